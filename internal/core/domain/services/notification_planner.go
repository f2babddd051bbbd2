package services

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
)

// NotificationPolicy toggles the notifications deployments disagree on. The
// remaining notifications are always produced.
type NotificationPolicy struct {
	NotifyCustomerOnAccept   bool
	NotifyManagerOnCancel    bool
	NotifyManagerOnDelivered bool
}

// DefaultNotificationPolicy tells the customer about acceptance and keeps the
// manager out of cancel and delivery updates.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		NotifyCustomerOnAccept:   true,
		NotifyManagerOnCancel:    false,
		NotifyManagerOnDelivered: false,
	}
}

// NotificationPlanner builds the notification tasks for an order change. It
// never sends anything; the caller hands the tasks to the dispatcher once the
// change is persisted.
//
// Recipients per change:
//
//	create      single(manager)           "New Order"
//	accept      broadcast(delivery_guy)   "Order Available"
//	            single(customer)          "Order Accepted"   (NotifyCustomerOnAccept)
//	reject      single(customer)          "Order Rejected"
//	cancel      single(manager)           "Order Canceled"   (NotifyManagerOnCancel)
//	claim       single(customer)          "Courier Assigned"
//	on_the_way  single(customer)          "Order On The Way"
//	deliver     single(customer)          "Order Delivered"
//	            single(manager)           "Order Delivered"  (NotifyManagerOnDelivered)
type NotificationPlanner struct {
	policy NotificationPolicy
}

func NewNotificationPlanner(policy NotificationPolicy) NotificationPlanner {
	return NotificationPlanner{policy: policy}
}

// PlanCreated returns the tasks for a freshly placed order.
func (p NotificationPlanner) PlanCreated(o *order.Order, managerID kernel.UUID) []notification.Task {
	return []notification.Task{
		notification.NewTask(
			notification.Single(managerID, actor.RestaurantManager),
			"New Order",
			"You have a new order from a customer.",
			o,
		),
	}
}

// PlanTransition returns the tasks for event, which has already been applied
// to o. Unknown events produce no tasks.
func (p NotificationPlanner) PlanTransition(o *order.Order, event order.Event, managerID kernel.UUID) []notification.Task {
	customer := notification.Single(o.Customer(), actor.Customer)
	manager := notification.Single(managerID, actor.RestaurantManager)

	var tasks []notification.Task
	switch event {
	case order.Accept:
		tasks = append(tasks, p.availableTask(o))
		if p.policy.NotifyCustomerOnAccept {
			tasks = append(tasks, notification.NewTask(customer,
				"Order Accepted", "Your order has been accepted by the restaurant.", o))
		}
	case order.Reject:
		tasks = append(tasks, notification.NewTask(customer,
			"Order Rejected", "Your order has been rejected by the restaurant.", o))
	case order.Cancel:
		if p.policy.NotifyManagerOnCancel {
			tasks = append(tasks, notification.NewTask(manager,
				"Order Canceled", fmt.Sprintf("Order %s was canceled by the customer.", o.ID()), o))
		}
	case order.Assign:
		tasks = append(tasks, notification.NewTask(customer,
			"Courier Assigned", "A delivery guy has picked up your order.", o))
	case order.StartDelivery:
		tasks = append(tasks, notification.NewTask(customer,
			"Order On The Way", "A delivery guy is on the way to deliver your order.", o))
	case order.Deliver:
		tasks = append(tasks, notification.NewTask(customer,
			"Order Delivered", "Your order has been delivered.", o))
		if p.policy.NotifyManagerOnDelivered {
			tasks = append(tasks, notification.NewTask(manager,
				"Order Delivered", fmt.Sprintf("Order %s has been delivered.", o.ID()), o))
		}
	}
	return tasks
}

// PlanClaimed returns the tasks for the courier that won the claim.
func (p NotificationPlanner) PlanClaimed(o *order.Order) []notification.Task {
	return p.PlanTransition(o, order.Assign, kernel.UUID{})
}

// PlanReminder re-announces an order that no courier has claimed yet. It
// returns nil once the order is no longer claimable.
func (p NotificationPlanner) PlanReminder(o *order.Order) []notification.Task {
	if !o.IsClaimable() {
		return nil
	}
	return []notification.Task{p.availableTask(o)}
}

func (p NotificationPlanner) availableTask(o *order.Order) notification.Task {
	return notification.NewTask(
		notification.Broadcast(actor.DeliveryGuy),
		"Order Available",
		fmt.Sprintf("Order %s needs to be delivered.", o.ID()),
		o,
	)
}
