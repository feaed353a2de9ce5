package order

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/onlineshop/backend/internal/domain/cart"
	"github.com/onlineshop/backend/internal/domain/catalog"
	"github.com/onlineshop/backend/internal/domain/identity"
	"github.com/onlineshop/backend/internal/domain/order"
	"github.com/onlineshop/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of order.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithStockRestore(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAvailable(ctx context.Context, query catalog.CatalogQuery) ([]catalog.Product, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySuggestedBy(ctx context.Context, userID uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// stubCartStore is a map-backed cart.Store for tests
type stubCartStore struct {
	carts map[uuid.UUID]*cart.Cart
}

func newStubCartStore() *stubCartStore {
	return &stubCartStore{carts: make(map[uuid.UUID]*cart.Cart)}
}

func (s *stubCartStore) Get(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	if c, ok := s.carts[userID]; ok {
		return c, nil
	}
	return cart.New(), nil
}

func (s *stubCartStore) Save(ctx context.Context, userID uuid.UUID, c *cart.Cart) error {
	s.carts[userID] = c
	return nil
}

func (s *stubCartStore) Delete(ctx context.Context, userID uuid.UUID) error {
	delete(s.carts, userID)
	return nil
}

// stubUserRepo is a map-backed identity.UserRepository for resolving
// customer names in admin listings.
type stubUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newStubUserRepo(users ...*identity.User) *stubUserRepo {
	s := &stubUserRepo{users: make(map[uuid.UUID]*identity.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return nil, shared.ErrNotFound
}

func (s *stubUserRepo) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (s *stubUserRepo) Save(ctx context.Context, user *identity.User) error { return nil }

func (s *stubUserRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

// stubProofStore records saved keys without touching any real storage
type stubProofStore struct {
	saved []string
}

func (s *stubProofStore) Save(ctx context.Context, key string, content io.Reader) (string, error) {
	s.saved = append(s.saved, key)
	return key, nil
}

func (s *stubProofStore) Delete(ctx context.Context, key string) error { return nil }

func (s *stubProofStore) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func newTestProduct(t *testing.T, name string, price int64, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "", decimal.NewFromInt(price), stock, nil)
	require.NoError(t, err)
	return p
}

func TestOrderService_Checkout_FromCart(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	productRepo := new(MockProductRepository)
	carts := newStubCartStore()
	service := NewOrderService(orderRepo, productRepo, newStubUserRepo(), carts, &stubProofStore{})

	userID := uuid.New()
	mug := newTestProduct(t, "Mug", 8, 10)
	poster := newTestProduct(t, "Poster", 15, 3)

	c := cart.New()
	c.Add(mug.ID, 2)
	c.Add(poster.ID, 1)
	c.SetBuyNow(poster.ID)
	require.NoError(t, carts.Save(context.Background(), userID, c))

	productRepo.On("FindByID", mock.Anything, mug.ID).Return(mug, nil)
	productRepo.On("FindByID", mock.Anything, poster.ID).Return(poster, nil)
	orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.UserID == userID && len(o.Items) == 2 &&
			o.TotalAmount.Equal(decimal.NewFromInt(31))
	})).Return(nil)

	resp, err := service.Checkout(context.Background(), userID, CheckoutRequest{PaymentMethod: order.PaymentMethodCash})

	require.NoError(t, err)
	assert.Equal(t, "Pending", resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(31)))
	orderRepo.AssertExpectations(t)

	// cart lines are cleared, the buy-now slot survives
	after, err := carts.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, after.IsEmpty())
	assert.NotNil(t, after.BuyNow)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	service := NewOrderService(new(MockOrderRepository), new(MockProductRepository), newStubUserRepo(), newStubCartStore(), &stubProofStore{})

	_, err := service.Checkout(context.Background(), uuid.New(), CheckoutRequest{PaymentMethod: order.PaymentMethodCash})

	assert.ErrorIs(t, err, shared.ErrEmptyCart)
}

func TestOrderService_Checkout_BuyNow(t *testing.T) {
	t.Run("orders the slot product with quantity one", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		carts := newStubCartStore()
		service := NewOrderService(orderRepo, productRepo, newStubUserRepo(), carts, &stubProofStore{})

		userID := uuid.New()
		mug := newTestProduct(t, "Mug", 8, 10)
		keyboard := newTestProduct(t, "Keyboard", 120, 5)

		c := cart.New()
		c.Add(mug.ID, 4)
		c.SetBuyNow(keyboard.ID)
		require.NoError(t, carts.Save(context.Background(), userID, c))

		productRepo.On("FindByID", mock.Anything, keyboard.ID).Return(keyboard, nil)
		orderRepo.On("Create", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return len(o.Items) == 1 && o.Items[0].Quantity == 1 &&
				o.TotalAmount.Equal(decimal.NewFromInt(120))
		})).Return(nil)

		_, err := service.Checkout(context.Background(), userID, CheckoutRequest{
			PaymentMethod: order.PaymentMethodOnline,
			BuyNow:        true,
		})

		require.NoError(t, err)
		orderRepo.AssertExpectations(t)

		// the slot is cleared, the cart lines survive
		after, err := carts.Get(context.Background(), userID)
		require.NoError(t, err)
		assert.Nil(t, after.BuyNow)
		assert.Equal(t, 4, after.Items[mug.ID])
	})

	t.Run("empty slot", func(t *testing.T) {
		service := NewOrderService(new(MockOrderRepository), new(MockProductRepository), newStubUserRepo(), newStubCartStore(), &stubProofStore{})

		_, err := service.Checkout(context.Background(), uuid.New(), CheckoutRequest{
			PaymentMethod: order.PaymentMethodCash,
			BuyNow:        true,
		})

		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})

	t.Run("a product that sold out after entering the slot is still ordered", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		productRepo := new(MockProductRepository)
		carts := newStubCartStore()
		service := NewOrderService(orderRepo, productRepo, newStubUserRepo(), carts, &stubProofStore{})

		userID := uuid.New()
		soldOut := newTestProduct(t, "Poster", 15, 0)

		c := cart.New()
		c.SetBuyNow(soldOut.ID)
		require.NoError(t, carts.Save(context.Background(), userID, c))

		productRepo.On("FindByID", mock.Anything, soldOut.ID).Return(soldOut, nil)
		orderRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Checkout(context.Background(), userID, CheckoutRequest{
			PaymentMethod: order.PaymentMethodCash,
			BuyNow:        true,
		})

		require.NoError(t, err)
		orderRepo.AssertExpectations(t)
	})

	t.Run("a slot product that was deleted is rejected", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		carts := newStubCartStore()
		service := NewOrderService(new(MockOrderRepository), productRepo, newStubUserRepo(), carts, &stubProofStore{})

		userID := uuid.New()
		gone := uuid.New()

		c := cart.New()
		c.SetBuyNow(gone)
		require.NoError(t, carts.Save(context.Background(), userID, c))

		productRepo.On("FindByID", mock.Anything, gone).Return(nil, shared.ErrNotFound)

		_, err := service.Checkout(context.Background(), userID, CheckoutRequest{
			PaymentMethod: order.PaymentMethodCash,
			BuyNow:        true,
		})

		assert.ErrorIs(t, err, shared.ErrProductUnavailable)
	})
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("owner cancels pending order with stock restore", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), newStubUserRepo(), newStubCartStore(), &stubProofStore{})

		userID := uuid.New()
		o, err := order.NewOrder(userID, order.PaymentMethodCash, []order.Line{
			{ProductID: uuid.New(), ProductName: "Mug", Quantity: 2, UnitPrice: decimal.NewFromInt(8)},
		})
		require.NoError(t, err)

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orderRepo.On("SaveWithStockRestore", mock.Anything, o).Return(nil)

		resp, err := service.Cancel(context.Background(), userID, o.ID)

		require.NoError(t, err)
		assert.Equal(t, "Cancelled", resp.Status)
		orderRepo.AssertExpectations(t)
	})

	t.Run("someone else's order cannot be cancelled", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), newStubUserRepo(), newStubCartStore(), &stubProofStore{})

		o, err := order.NewOrder(uuid.New(), order.PaymentMethodCash, []order.Line{
			{ProductID: uuid.New(), ProductName: "Mug", Quantity: 1, UnitPrice: decimal.NewFromInt(8)},
		})
		require.NoError(t, err)

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err = service.Cancel(context.Background(), uuid.New(), o.ID)

		assert.ErrorIs(t, err, shared.ErrNotCancellable)
		orderRepo.AssertNotCalled(t, "SaveWithStockRestore", mock.Anything, mock.Anything)
	})
}

func TestOrderService_AttachPaymentProof(t *testing.T) {
	t.Run("stores the proof under an order-scoped name", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		proofs := &stubProofStore{}
		service := NewOrderService(orderRepo, new(MockProductRepository), newStubUserRepo(), newStubCartStore(), proofs)

		userID := uuid.New()
		o, err := order.NewOrder(userID, order.PaymentMethodOnline, []order.Line{
			{ProductID: uuid.New(), ProductName: "Mug", Quantity: 1, UnitPrice: decimal.NewFromInt(8)},
		})
		require.NoError(t, err)

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		orderRepo.On("Save", mock.Anything, o).Return(nil)

		resp, err := service.AttachPaymentProof(context.Background(), userID, o.ID, "receipt.png", strings.NewReader("img"))

		require.NoError(t, err)
		require.NotNil(t, resp.ProofImage)
		assert.Equal(t, "proof_"+o.ID.String()+"_receipt.png", *resp.ProofImage)
		require.Len(t, proofs.saved, 1)
	})

	t.Run("only the owner may attach a proof", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewOrderService(orderRepo, new(MockProductRepository), newStubUserRepo(), newStubCartStore(), &stubProofStore{})

		o, err := order.NewOrder(uuid.New(), order.PaymentMethodOnline, []order.Line{
			{ProductID: uuid.New(), ProductName: "Mug", Quantity: 1, UnitPrice: decimal.NewFromInt(8)},
		})
		require.NoError(t, err)

		orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err = service.AttachPaymentProof(context.Background(), uuid.New(), o.ID, "receipt.png", strings.NewReader("img"))

		assert.ErrorIs(t, err, shared.ErrNotOwner)
	})
}

func TestOrderService_Review(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository), newStubUserRepo(), newStubCartStore(), &stubProofStore{})

	o, err := order.NewOrder(uuid.New(), order.PaymentMethodCash, []order.Line{
		{ProductID: uuid.New(), ProductName: "Mug", Quantity: 1, UnitPrice: decimal.NewFromInt(8)},
	})
	require.NoError(t, err)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	orderRepo.On("Save", mock.Anything, o).Return(nil)

	resp, err := service.Review(context.Background(), o.ID, ReviewOrderRequest{Action: "approve", Note: "paid in person"})

	require.NoError(t, err)
	assert.Equal(t, "Shipped", resp.Status)
	require.NotNil(t, resp.AdminNote)
	assert.Equal(t, "paid in person", *resp.AdminNote)
}

func TestOrderService_Get_HidesForeignOrders(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := NewOrderService(orderRepo, new(MockProductRepository), newStubUserRepo(), newStubCartStore(), &stubProofStore{})

	o, err := order.NewOrder(uuid.New(), order.PaymentMethodCash, []order.Line{
		{ProductID: uuid.New(), ProductName: "Mug", Quantity: 1, UnitPrice: decimal.NewFromInt(8)},
	})
	require.NoError(t, err)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err = service.Get(context.Background(), uuid.New(), o.ID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOrderService_List_FillsCustomerNames(t *testing.T) {
	alice, err := identity.NewUser("Alice", "alice@example.com", "hash")
	require.NoError(t, err)

	o, err := order.NewOrder(alice.ID, order.PaymentMethodOnline, []order.Line{
		{ProductID: uuid.New(), ProductName: "Mug", Quantity: 1, UnitPrice: decimal.NewFromInt(8)},
	})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("FindAll", mock.Anything, mock.Anything).Return([]order.Order{*o}, nil)
	orderRepo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	service := NewOrderService(orderRepo, new(MockProductRepository), newStubUserRepo(alice), newStubCartStore(), &stubProofStore{})

	responses, total, err := service.List(context.Background(), OrderListFilter{})

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, responses, 1)
	assert.Equal(t, "Alice", responses[0].CustomerName)
	// an online order with no proof yet still needs one
	assert.True(t, responses[0].RequiresProof)
}
