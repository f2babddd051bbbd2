package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/memory"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type QueriesTestSuite struct {
	suite.Suite

	orders      *memory.OrderStore
	actors      *memory.ActorDirectory
	restaurants *memory.RestaurantDirectory
	inbox       *memory.Inbox

	customer     actor.Actor
	otherClient  actor.Actor
	manager      actor.Actor
	courier      actor.Actor
	otherCourier actor.Actor
	restaurantA  kernel.UUID
	restaurantB  kernel.UUID
	base         time.Time
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (s *QueriesTestSuite) SetupTest() {
	ctx := s.T().Context()
	s.orders = memory.NewOrderStore()
	s.actors = memory.NewActorDirectory()
	s.restaurants = memory.NewRestaurantDirectory()
	s.inbox = memory.NewInbox()
	s.base = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	s.customer = s.newActor(actor.Customer)
	s.otherClient = s.newActor(actor.Customer)
	s.manager = s.newActor(actor.RestaurantManager)
	s.courier = s.newActor(actor.DeliveryGuy)
	s.otherCourier = s.newActor(actor.DeliveryGuy)
	for _, a := range []actor.Actor{s.customer, s.otherClient, s.manager, s.courier, s.otherCourier} {
		s.Require().NoError(s.actors.Save(ctx, a))
	}

	s.restaurantA, s.restaurantB = kernel.NewUUID(), kernel.NewUUID()
	s.restaurants.Assign(s.restaurantA, s.manager.ID())
	s.restaurants.Assign(s.restaurantB, s.manager.ID())
}

func (s *QueriesTestSuite) newActor(role actor.Role) actor.Actor {
	a, err := actor.NewActor(kernel.NewUUID(), role, string(role))
	s.Require().NoError(err)
	return a
}

// place stores an order created minutesLater after the suite's base time and
// moves it through events.
func (s *QueriesTestSuite) place(customer actor.Actor, restaurantID kernel.UUID, minutesLater int, steps ...func(*order.Order)) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Kitfo", 1, decimal.NewFromInt(320))
	s.Require().NoError(err)
	location, err := kernel.NewGeoPoint(9.0, 38.7)
	s.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), customer.ID(), restaurantID, []order.Item{item}, location,
		s.base.Add(time.Duration(minutesLater)*time.Minute))
	s.Require().NoError(err)
	for _, step := range steps {
		step(o)
	}
	s.Require().NoError(s.orders.Add(s.T().Context(), o))
	return o
}

func (s *QueriesTestSuite) accepted(o *order.Order) {
	s.Require().NoError(o.Apply(order.Accept, s.manager, s.manager.ID()))
}

func (s *QueriesTestSuite) claimedBy(courier actor.Actor) func(*order.Order) {
	return func(o *order.Order) { s.Require().NoError(o.Claim(courier)) }
}

func (s *QueriesTestSuite) TestGetOrder_Visibility() {
	ctx := s.T().Context()
	pending := s.place(s.customer, s.restaurantA, 0)
	available := s.place(s.customer, s.restaurantA, 1, s.accepted)
	claimed := s.place(s.customer, s.restaurantA, 2, s.accepted, s.claimedBy(s.courier))
	handler := queries.NewGetOrderQueryHandler(s.orders, s.actors, s.restaurants)

	cases := []struct {
		name    string
		order   *order.Order
		by      actor.Actor
		visible bool
	}{
		{"customer sees own order", pending, s.customer, true},
		{"other customer does not", pending, s.otherClient, false},
		{"restaurant manager sees it", pending, s.manager, true},
		{"courier cannot see pending order", pending, s.courier, false},
		{"any courier sees claimable order", available, s.otherCourier, true},
		{"bound courier sees claimed order", claimed, s.courier, true},
		{"other courier loses sight after claim", claimed, s.otherCourier, false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			query, err := queries.NewGetOrderQuery(tc.order.ID(), tc.by.ID())
			s.Require().NoError(err)

			view, err := handler.Handle(ctx, query)

			if !tc.visible {
				s.Require().ErrorIs(err, errs.ErrForbidden)
				return
			}
			s.Require().NoError(err)
			s.Equal(tc.order.ID(), view.ID)
			s.Equal(tc.order.Status().String(), view.Status)
			s.True(decimal.NewFromInt(320).Equal(view.TotalPrice))
			s.Len(view.Items, 1)
		})
	}
}

func (s *QueriesTestSuite) TestGetOrder_NotFoundAndUnknownActor() {
	ctx := s.T().Context()
	handler := queries.NewGetOrderQueryHandler(s.orders, s.actors, s.restaurants)

	query, err := queries.NewGetOrderQuery(kernel.NewUUID(), s.customer.ID())
	s.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)

	o := s.place(s.customer, s.restaurantA, 0)
	query, err = queries.NewGetOrderQuery(o.ID(), kernel.NewUUID())
	s.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	s.Require().ErrorIs(err, errs.ErrForbidden)

	_, err = handler.Handle(ctx, queries.GetOrderQuery{})
	s.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func (s *QueriesTestSuite) TestListCustomerOrders_NewestFirst() {
	first := s.place(s.customer, s.restaurantA, 0)
	second := s.place(s.customer, s.restaurantB, 5)
	s.place(s.otherClient, s.restaurantA, 10)
	handler := queries.NewListCustomerOrdersQueryHandler(s.orders, s.actors)

	query, err := queries.NewListCustomerOrdersQuery(s.customer.ID())
	s.Require().NoError(err)
	views, err := handler.Handle(s.T().Context(), query)

	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(second.ID(), views[0].ID)
	s.Equal(first.ID(), views[1].ID)
}

func (s *QueriesTestSuite) TestListCustomerOrders_RequiresCustomer() {
	handler := queries.NewListCustomerOrdersQueryHandler(s.orders, s.actors)
	query, err := queries.NewListCustomerOrdersQuery(s.courier.ID())
	s.Require().NoError(err)

	_, err = handler.Handle(s.T().Context(), query)

	s.Require().ErrorIs(err, errs.ErrForbidden)
}

func (s *QueriesTestSuite) TestListRestaurantOrders_MergesManagedRestaurants() {
	a := s.place(s.customer, s.restaurantA, 0)
	b := s.place(s.otherClient, s.restaurantB, 3, s.accepted)
	s.place(s.customer, kernel.NewUUID(), 6)
	handler := queries.NewListRestaurantOrdersQueryHandler(s.orders, s.actors, s.restaurants)

	query, err := queries.NewListRestaurantOrdersQuery(s.manager.ID(), "")
	s.Require().NoError(err)
	views, err := handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(b.ID(), views[0].ID)
	s.Equal(a.ID(), views[1].ID)

	query, err = queries.NewListRestaurantOrdersQuery(s.manager.ID(), "pending")
	s.Require().NoError(err)
	views, err = handler.Handle(s.T().Context(), query)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal(a.ID(), views[0].ID)
}

func (s *QueriesTestSuite) TestListRestaurantOrders_InvalidStatus() {
	_, err := queries.NewListRestaurantOrdersQuery(s.manager.ID(), "cooking")

	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (s *QueriesTestSuite) TestListAvailableOrders_OnlyClaimable() {
	older := s.place(s.customer, s.restaurantA, 0, s.accepted)
	newer := s.place(s.otherClient, s.restaurantB, 4, s.accepted)
	s.place(s.customer, s.restaurantA, 1)
	s.place(s.customer, s.restaurantA, 2, s.accepted, s.claimedBy(s.courier))
	handler := queries.NewListAvailableOrdersQueryHandler(s.orders, s.actors)

	query, err := queries.NewListAvailableOrdersQuery(s.otherCourier.ID())
	s.Require().NoError(err)
	views, err := handler.Handle(s.T().Context(), query)

	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(older.ID(), views[0].ID)
	s.Equal(newer.ID(), views[1].ID)

	query, err = queries.NewListAvailableOrdersQuery(s.customer.ID())
	s.Require().NoError(err)
	_, err = handler.Handle(s.T().Context(), query)
	s.Require().ErrorIs(err, errs.ErrForbidden)
}

func (s *QueriesTestSuite) TestListNotifications() {
	ctx := s.T().Context()
	o := s.place(s.customer, s.restaurantA, 0)
	for i, title := range []string{"Order Accepted", "Courier Assigned", "Order On The Way"} {
		task := notification.NewTask(notification.Single(s.customer.ID(), actor.Customer), title, "", o)
		s.Require().NoError(s.inbox.Append(ctx,
			notification.NewInboxEntry(s.customer.ID(), task, s.base.Add(time.Duration(i)*time.Minute))))
	}
	handler := queries.NewListNotificationsQueryHandler(s.inbox, s.actors)

	query, err := queries.NewListNotificationsQuery(s.customer.ID(), 2)
	s.Require().NoError(err)
	entries, err := handler.Handle(ctx, query)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Order On The Way", entries[0].Title)
	s.Equal("Courier Assigned", entries[1].Title)

	query, err = queries.NewListNotificationsQuery(s.courier.ID(), 0)
	s.Require().NoError(err)
	s.Equal(queries.DefaultNotificationsLimit, query.Limit())
	entries, err = handler.Handle(ctx, query)
	s.Require().NoError(err)
	s.NotNil(entries)
	s.Empty(entries)
}

func (s *QueriesTestSuite) TestListNotifications_LimitOutOfRange() {
	_, err := queries.NewListNotificationsQuery(s.customer.ID(), queries.MaxNotificationsLimit+1)

	s.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListByRestaurant(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (s *QueriesTestSuite) TestListCustomerOrders_StoreError() {
	ctx := s.T().Context()
	reader := new(MockOrderReader)
	reader.On("ListByCustomer", ctx, s.customer.ID()).Return(nil, errors.New("connection reset")).Once()
	handler := queries.NewListCustomerOrdersQueryHandler(reader, s.actors)

	query, err := queries.NewListCustomerOrdersQuery(s.customer.ID())
	s.Require().NoError(err)
	views, err := handler.Handle(ctx, query)

	s.Require().EqualError(err, "connection reset")
	s.Nil(views)
	reader.AssertExpectations(s.T())
}
