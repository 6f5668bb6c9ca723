package models

// Status is a backend-defined moderation or delivery state. The
// vocabulary is owned by the server; the client never invents values.
type Status string

const (
	StatusPending        Status = "pending"
	StatusApproved       Status = "approved"
	StatusRejected       Status = "rejected"
	StatusVerified       Status = "verified"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusCompleted      Status = "completed"
)

// DeliveryTransitions lists the status values a volunteer may move a
// claimed delivery through, in order.
var DeliveryTransitions = []Status{StatusOutForDelivery, StatusCompleted}
