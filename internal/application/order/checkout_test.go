package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookmart/internal/domain/book"
	"github.com/xiebiao/bookmart/internal/domain/cart"
	"github.com/xiebiao/bookmart/internal/domain/order"
	apperrors "github.com/xiebiao/bookmart/pkg/errors"
)

// =========================================
// 内存版测试替身
// =========================================

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uint]*book.Book)}
}

func (f *fakeBookRepo) put(id, sellerID uint, price int64) {
	f.books[id] = &book.Book{ID: id, SellerID: sellerID, Title: "书", Price: price, Stock: 100}
}

func (f *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeBookRepo) FindBySeller(_ context.Context, _ uint) ([]*book.Book, error) {
	return nil, nil
}

func (f *fakeBookRepo) FindAll(_ context.Context) ([]*book.Book, error) { return nil, nil }

func (f *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id uint) error {
	delete(f.books, id)
	return nil
}

type fakeCartRepo struct {
	nextID uint
	lines  map[uint]*cart.Line
	books  *fakeBookRepo // 模拟查询购物车时的图书联查
}

func newFakeCartRepo(books *fakeBookRepo) *fakeCartRepo {
	return &fakeCartRepo{nextID: 1, lines: make(map[uint]*cart.Line), books: books}
}

func (f *fakeCartRepo) put(buyerID, bookID uint, quantity int) {
	f.lines[f.nextID] = &cart.Line{ID: f.nextID, BuyerID: buyerID, BookID: bookID, Quantity: quantity}
	f.nextID++
}

func (f *fakeCartRepo) Upsert(_ context.Context, line *cart.Line) error {
	line.ID = f.nextID
	f.nextID++
	f.lines[line.ID] = line
	return nil
}

func (f *fakeCartRepo) FindByBuyer(_ context.Context, buyerID uint) ([]*cart.Detail, error) {
	var out []*cart.Detail
	// 按ID升序返回，结果稳定便于断言
	for id := uint(1); id < f.nextID; id++ {
		if l, ok := f.lines[id]; ok && l.BuyerID == buyerID {
			d := &cart.Detail{Line: *l}
			if b, ok := f.books.books[l.BookID]; ok {
				d.Title = b.Title
				d.UnitPrice = b.Price
				d.SellerID = b.SellerID
			} else {
				d.BookMissing = true
			}
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeCartRepo) FindByID(_ context.Context, id uint) (*cart.Line, error) {
	l, ok := f.lines[id]
	if !ok {
		return nil, cart.ErrLineNotFound
	}
	return l, nil
}

func (f *fakeCartRepo) UpdateQuantity(_ context.Context, id uint, quantity int) (*cart.Line, error) {
	l, ok := f.lines[id]
	if !ok {
		return nil, cart.ErrLineNotFound
	}
	l.Quantity = quantity
	return l, nil
}

func (f *fakeCartRepo) Remove(_ context.Context, id uint) error {
	delete(f.lines, id)
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, buyerID uint) error {
	for id, l := range f.lines {
		if l.BuyerID == buyerID {
			delete(f.lines, id)
		}
	}
	return nil
}

type fakeOrderRepo struct {
	nextID uint
	orders map[uint]*order.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: make(map[uint]*order.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	o.ID = f.nextID
	f.nextID++
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) FindBySeller(_ context.Context, sellerID uint) ([]*order.Order, error) {
	var out []*order.Order
	for id := uint(1); id < f.nextID; id++ {
		if o, ok := f.orders[id]; ok && o.SellerID == sellerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) FindByBuyer(_ context.Context, buyerID uint) ([]*order.Order, error) {
	var out []*order.Order
	for id := uint(1); id < f.nextID; id++ {
		if o, ok := f.orders[id]; ok && o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return order.ErrOrderNotFound
	}
	f.orders[o.ID] = o
	return nil
}

// fakeTxManager 模拟事务回滚：执行前快照，失败时恢复
type fakeTxManager struct {
	carts  *fakeCartRepo
	orders *fakeOrderRepo
}

func (f *fakeTxManager) Transaction(ctx context.Context, fn func(context.Context) error) error {
	cartSnap := make(map[uint]*cart.Line, len(f.carts.lines))
	for id, l := range f.carts.lines {
		cp := *l
		cartSnap[id] = &cp
	}
	orderSnap := make(map[uint]*order.Order, len(f.orders.orders))
	for id, o := range f.orders.orders {
		cp := *o
		orderSnap[id] = &cp
	}
	orderNextID := f.orders.nextID

	if err := fn(ctx); err != nil {
		f.carts.lines = cartSnap
		f.orders.orders = orderSnap
		f.orders.nextID = orderNextID
		return err
	}
	return nil
}

type fakeLock struct {
	busy     bool
	acquired int
	released int
}

func (f *fakeLock) Acquire(_ context.Context, _ uint) (func(), error) {
	if f.busy {
		return nil, ErrCheckoutBusy
	}
	f.acquired++
	return func() { f.released++ }, nil
}

type fakePublisher struct {
	created       []*order.Order
	statusChanged []*order.Order
}

func (f *fakePublisher) OrderCreated(_ context.Context, o *order.Order) {
	f.created = append(f.created, o)
}

func (f *fakePublisher) OrderStatusChanged(_ context.Context, o *order.Order) {
	f.statusChanged = append(f.statusChanged, o)
}

type checkoutFixture struct {
	books     *fakeBookRepo
	carts     *fakeCartRepo
	orders    *fakeOrderRepo
	lock      *fakeLock
	publisher *fakePublisher
	uc        *CheckoutUseCase
}

func newCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		books:     newFakeBookRepo(),
		orders:    newFakeOrderRepo(),
		lock:      &fakeLock{},
		publisher: &fakePublisher{},
	}
	f.carts = newFakeCartRepo(f.books)
	tx := &fakeTxManager{carts: f.carts, orders: f.orders}
	f.uc = NewCheckoutUseCase(f.carts, f.orders, tx, f.lock, f.publisher)
	return f
}

// =========================================
// 结算用例测试
// =========================================

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("购物车每个条目生成一个订单", func(t *testing.T) {
		f := newCheckoutFixture()
		f.books.put(10, 100, 500) // 卖家100，单价5元
		f.books.put(11, 200, 300) // 卖家200，单价3元
		f.carts.put(1, 10, 2)
		f.carts.put(1, 11, 1)

		infos, err := f.uc.Execute(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, infos, 2)

		// 金额 = 结算时单价 × 数量
		assert.Equal(t, int64(1000), infos[0].TotalPrice)
		assert.Equal(t, int64(300), infos[1].TotalPrice)
		// 卖家来自图书记录
		assert.Equal(t, uint(100), infos[0].SellerID)
		assert.Equal(t, uint(200), infos[1].SellerID)
		// 新订单都是待发货
		assert.Equal(t, "pending", infos[0].Status)
		assert.Equal(t, "pending", infos[1].Status)

		// 购物车已清空
		left, _ := f.carts.FindByBuyer(ctx, 1)
		assert.Empty(t, left)
		// 每个订单一条事件
		assert.Len(t, f.publisher.created, 2)
		// 锁已释放
		assert.Equal(t, 1, f.lock.acquired)
		assert.Equal(t, 1, f.lock.released)
	})

	t.Run("空购物车不能结算", func(t *testing.T) {
		f := newCheckoutFixture()

		_, err := f.uc.Execute(ctx, 1)
		assert.ErrorIs(t, err, ErrEmptyCart)
		// 出错也要释放锁
		assert.Equal(t, 1, f.lock.released)
	})

	t.Run("金额使用结算时购物车联查出的价格", func(t *testing.T) {
		f := newCheckoutFixture()
		f.books.put(10, 100, 500)
		f.carts.put(1, 10, 2)

		// 加购后卖家改价，结算时购物车里展示的已经是新价格
		f.books.books[10].Price = 800

		infos, err := f.uc.Execute(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(1600), infos[0].TotalPrice)

		// 结算之后再改价不影响已生成订单
		f.books.books[10].Price = 100
		assert.Equal(t, int64(1600), f.orders.orders[infos[0].ID].TotalPrice)
	})

	t.Run("引用已删除图书时整单失败且购物车保留", func(t *testing.T) {
		f := newCheckoutFixture()
		f.books.put(10, 100, 500)
		f.carts.put(1, 10, 2)
		f.carts.put(1, 99, 1) // 图书99不存在

		_, err := f.uc.Execute(ctx, 1)
		appErr := apperrors.GetAppError(err)
		assert.Equal(t, apperrors.ErrCodeDanglingReference, appErr.Code)

		// 事务回滚：一个订单都没有落库
		assert.Empty(t, f.orders.orders)
		// 购物车保持原样（包括正常的那一条）
		left, _ := f.carts.FindByBuyer(ctx, 1)
		assert.Len(t, left, 2)
		// 没有事件发出
		assert.Empty(t, f.publisher.created)
	})

	t.Run("同一买家结算进行中时拒绝", func(t *testing.T) {
		f := newCheckoutFixture()
		f.books.put(10, 100, 500)
		f.carts.put(1, 10, 2)
		f.lock.busy = true

		_, err := f.uc.Execute(ctx, 1)
		assert.ErrorIs(t, err, ErrCheckoutBusy)
		// 购物车不受影响
		left, _ := f.carts.FindByBuyer(ctx, 1)
		assert.Len(t, left, 1)
	})

	t.Run("只结算当前买家的购物车", func(t *testing.T) {
		f := newCheckoutFixture()
		f.books.put(10, 100, 500)
		f.carts.put(1, 10, 2)
		f.carts.put(2, 10, 3)

		infos, err := f.uc.Execute(ctx, 1)
		assert.NoError(t, err)
		assert.Len(t, infos, 1)

		// 买家2的购物车原封不动
		left, _ := f.carts.FindByBuyer(ctx, 2)
		assert.Len(t, left, 1)
	})
}
