package usecase_test

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]string)
	return cats, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

// TxReposをモックの束で実装する
type txReposStub struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
}

func (r *txReposStub) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposStub) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposStub) Products() repo.ProductRepository     { return r.products }
func (r *txReposStub) Inventory() repo.InventoryRepository  { return r.inventory }

// fnをそのまま実行するだけのTransactionManager
type txManagerStub struct {
	repos repo.TxRepos
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

type seqIDGen struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGen) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return "id-" + strconv.Itoa(g.n)
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func newOrderUsecase(repos repo.TxRepos) *usecase.OrderUsecase {
	return usecase.NewOrderUsecase(
		&txManagerStub{repos: repos},
		&seqIDGen{},
		&fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// =====================
// PlaceOrder
// =====================

func TestOrderUsecase_PlaceOrder_TotalEqualsSumOfItems(t *testing.T) {
	ctx := context.Background()

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)

	laptop := model.Product{ID: "1", Name: "Laptop", Price: dec("999.99"), Stock: 10}
	products.On("FindByID", mock.Anything, "1").Return(laptop, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, "1", int64(3)).Return(true, nil)

	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.TotalAmount.Equal(dec("2999.97")) &&
			o.Status == model.OrderStatusPending &&
			o.PaymentStatus == model.PaymentStatusPending &&
			o.UserID == "user-1"
	})).Return(nil)

	items.On("CreateBulk", mock.Anything, mock.Anything, mock.MatchedBy(func(its []model.OrderItem) bool {
		return len(its) == 1 &&
			its[0].ProductID == "1" &&
			its[0].Quantity == 3 &&
			its[0].Price.Equal(dec("999.99"))
	})).Return(nil)

	uc := newOrderUsecase(&txReposStub{orders: orders, orderItems: items, products: products, inventory: inventory})

	out, err := uc.PlaceOrder(ctx, "user-1", usecase.PlaceOrderInput{
		Items: []usecase.OrderItemRequest{{ProductID: "1", Quantity: 3}},
	})

	assert.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(dec("2999.97")), "total = %s", out.TotalAmount)
	assert.Equal(t, "pending", out.Status)

	orders.AssertExpectations(t)
	items.AssertExpectations(t)
	inventory.AssertExpectations(t)
}

func TestOrderUsecase_PlaceOrder_MultipleItems(t *testing.T) {
	ctx := context.Background()

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)

	products.On("FindByID", mock.Anything, "6").Return(model.Product{ID: "6", Price: dec("19.99"), Stock: 50}, nil)
	products.On("FindByID", mock.Anything, "7").Return(model.Product{ID: "7", Price: dec("12.99"), Stock: 40}, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, "6", int64(2)).Return(true, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, "7", int64(1)).Return(true, nil)

	// 19.99*2 + 12.99 = 52.97
	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.TotalAmount.Equal(dec("52.97"))
	})).Return(nil)
	items.On("CreateBulk", mock.Anything, mock.Anything, mock.MatchedBy(func(its []model.OrderItem) bool {
		return len(its) == 2
	})).Return(nil)

	uc := newOrderUsecase(&txReposStub{orders: orders, orderItems: items, products: products, inventory: inventory})

	out, err := uc.PlaceOrder(ctx, "user-1", usecase.PlaceOrderInput{
		Items: []usecase.OrderItemRequest{
			{ProductID: "6", Quantity: 2},
			{ProductID: "7", Quantity: 1},
		},
	})

	assert.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(dec("52.97")))
}

func TestOrderUsecase_PlaceOrder_EmptyItems(t *testing.T) {
	uc := newOrderUsecase(&txReposStub{})

	_, err := uc.PlaceOrder(context.Background(), "user-1", usecase.PlaceOrderInput{})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	assert.Equal(t, "Cart is empty", he.Message)
}

func TestOrderUsecase_PlaceOrder_InvalidQuantity(t *testing.T) {
	uc := newOrderUsecase(&txReposStub{})

	_, err := uc.PlaceOrder(context.Background(), "user-1", usecase.PlaceOrderInput{
		Items: []usecase.OrderItemRequest{{ProductID: "1", Quantity: 0}},
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestOrderUsecase_PlaceOrder_ProductNotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)

	products.On("FindByID", mock.Anything, "missing").Return(model.Product{}, repo.ErrNotFound)

	uc := newOrderUsecase(&txReposStub{orders: orders, orderItems: items, products: products, inventory: inventory})

	_, err := uc.PlaceOrder(context.Background(), "user-1", usecase.PlaceOrderInput{
		Items: []usecase.OrderItemRequest{{ProductID: "missing", Quantity: 1}},
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
	assert.Equal(t, "Product not found", he.Message)

	//注文も明細も作られない
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	items.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_PlaceOrder_InsufficientStock_NoPartialState(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)

	products.On("FindByID", mock.Anything, "1").Return(model.Product{ID: "1", Price: dec("999.99"), Stock: 10}, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, "1", int64(11)).Return(false, nil)

	uc := newOrderUsecase(&txReposStub{orders: orders, orderItems: items, products: products, inventory: inventory})

	_, err := uc.PlaceOrder(context.Background(), "user-1", usecase.PlaceOrderInput{
		Items: []usecase.OrderItemRequest{{ProductID: "1", Quantity: 11}},
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
	//not-foundとは区別されたメッセージ
	assert.Equal(t, "Insufficient stock", he.Message)

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	items.AssertNotCalled(t, "CreateBulk", mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// 同時注文
// =====================

// 在庫をmutexで守る手書きフェイク。
// 条件付きUPDATE（stock >= qtyのときだけ減算）と同じ意味になる。
type atomicStockFake struct {
	mu    sync.Mutex
	stock map[string]int64
}

func (f *atomicStockFake) DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stock[productID] < qty {
		return false, nil
	}
	f.stock[productID] -= qty
	return true, nil
}

func (f *atomicStockFake) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[productID] += qty
	return nil
}

type recordingOrderRepo struct {
	mu     sync.Mutex
	orders []model.Order
}

func (r *recordingOrderRepo) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	return model.Order{}, repo.ErrNotFound
}

func (r *recordingOrderRepo) ListByUserID(ctx context.Context, userID string) ([]model.Order, error) {
	return nil, nil
}

func (r *recordingOrderRepo) Create(ctx context.Context, order model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, order)
	return nil
}

func (r *recordingOrderRepo) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error {
	return nil
}

type noopOrderItemRepo struct{}

func (noopOrderItemRepo) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	return nil
}

func (noopOrderItemRepo) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	return nil, nil
}

type staticProductRepo struct {
	products map[string]model.Product
}

func (r *staticProductRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	return nil, nil
}

func (r *staticProductRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r *staticProductRepo) ListCategories(ctx context.Context) ([]string, error) { return nil, nil }

func (r *staticProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	return p, nil
}

func (r *staticProductRepo) Count(ctx context.Context) (int64, error) { return 0, nil }

// 合計すると在庫を超える2つの注文を同時に投げたとき、
// 両方成功してはいけない。
func TestOrderUsecase_PlaceOrder_ConcurrentOrdersCannotOversell(t *testing.T) {
	stock := &atomicStockFake{stock: map[string]int64{"1": 10}}
	orderRepo := &recordingOrderRepo{}

	repos := &txReposStub{
		orders:     orderRepo,
		orderItems: noopOrderItemRepo{},
		products: &staticProductRepo{products: map[string]model.Product{
			"1": {ID: "1", Name: "Laptop", Price: dec("999.99"), Stock: 10},
		}},
		inventory: stock,
	}
	uc := newOrderUsecase(repos)

	//それぞれ7個（合計14 > 在庫10）
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.PlaceOrder(context.Background(), "user-1", usecase.PlaceOrderInput{
				Items: []usecase.OrderItemRequest{{ProductID: "1", Quantity: 7}},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			he, ok := usecase.AsHTTPError(err)
			assert.True(t, ok)
			assert.Equal(t, "Insufficient stock", he.Message)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, len(orderRepo.orders))
	assert.Equal(t, int64(3), stock.stock["1"])
}

// =====================
// List / Detail
// =====================

func TestOrderUsecase_ListMyOrders(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	o := model.Order{ID: "o-1", UserID: "user-1", TotalAmount: dec("199.99"), Status: model.OrderStatusPending}
	orders.On("ListByUserID", mock.Anything, "user-1").Return([]model.Order{o}, nil)
	items.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{
		{OrderID: "o-1", ProductID: "3", Quantity: 1, Price: dec("199.99")},
	}, nil)

	uc := newOrderUsecase(&txReposStub{orders: orders, orderItems: items})

	outs, err := uc.ListMyOrders(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(outs))
	assert.Equal(t, "o-1", outs[0].ID)
	assert.Equal(t, 1, len(outs[0].Items))
}

func TestOrderUsecase_GetMyOrderDetail_OtherUsersOrderIsNotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	orders.On("FindByID", mock.Anything, "o-1").Return(model.Order{ID: "o-1", UserID: "someone-else"}, nil)

	uc := newOrderUsecase(&txReposStub{orders: orders, orderItems: items})

	_, err := uc.GetMyOrderDetail(context.Background(), "user-1", "o-1")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
	assert.Equal(t, "Order not found", he.Message)
}

func TestOrderUsecase_GetMyOrderDetail_NotFound(t *testing.T) {
	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	orders.On("FindByID", mock.Anything, "nope").Return(model.Order{}, repo.ErrNotFound)

	uc := newOrderUsecase(&txReposStub{orders: orders, orderItems: items})

	_, err := uc.GetMyOrderDetail(context.Background(), "user-1", "nope")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 404, he.Status)
}
