package messaging

// Subjects of the cart events. RabbitMQ uses them as routing keys.
const (
	CartSubjects = "cart.>"

	CartItemAddedSubject        = "cart.item.added"
	CartItemRemovedSubject      = "cart.item.removed"
	CartCheckoutRejectedSubject = "cart.checkout.rejected"
	CartCheckoutStartedSubject  = "cart.checkout.started"
	CartCheckedOutSubject       = "cart.checkedout"
)
