package billing

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"dairy-billing-backend/internal/models"
	"dairy-billing-backend/internal/repository"
	"dairy-billing-backend/internal/services/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service owns the catalog, the bill ledger and the session's order state.
// Every operation runs under one lock, so each one sees a consistent catalog
// and ledger and leaves them consistent.
type Service struct {
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	billRepo     *repository.BillRepository
	paymentRepo  *repository.PaymentAmendmentRepository
	db           *gorm.DB

	mu           sync.Mutex
	draft        *Draft
	activeBillID string
	now          func() time.Time
}

func NewService(
	productRepo *repository.ProductRepository,
	customerRepo *repository.CustomerRepository,
	billRepo *repository.BillRepository,
	paymentRepo *repository.PaymentAmendmentRepository,
) *Service {
	return &Service{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		billRepo:     billRepo,
		paymentRepo:  paymentRepo,
		db:           billRepo.DB(),
		draft:        NewDraft(),
		now:          time.Now,
	}
}

// ProductInput is the editable part of a product.
type ProductInput struct {
	Name    string          `json:"name"`
	Variant string          `json:"variant"`
	Price   decimal.Decimal `json:"price"`
}

func (in ProductInput) validate() error {
	v := Violations{}
	v.required("name", in.Name)
	v.required("variant", in.Variant)
	switch {
	case !in.Price.IsPositive():
		v["price"] = "must_be_positive"
	case !pricing.ValidAmount(in.Price):
		v["price"] = "out_of_range"
	}
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

// CustomerInput is the editable part of a customer.
type CustomerInput struct {
	Name           string                `json:"name"`
	PriceOverrides models.PriceOverrides `json:"price_overrides"`
}

func (in CustomerInput) validate() error {
	v := Violations{}
	v.required("name", in.Name)
	if !v.Empty() {
		return &ValidationError{Violations: v}
	}
	return nil
}

// Catalog is a copy of the products and customers at one point in time.
type Catalog struct {
	Products  []models.Product  `json:"products"`
	Customers []models.Customer `json:"customers"`
}

// OrderView is the draft plus its live pricing.
type OrderView struct {
	CustomerID string     `json:"customer_id"`
	Quantities Quantities `json:"quantities"`
	Order
}

// ---- catalog ----

func (s *Service) ListProducts() ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productRepo.List()
}

func (s *Service) CreateProduct(in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &models.Product{
		ID:        "prod-" + uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Variant:   strings.TrimSpace(in.Variant),
		Price:     in.Price,
		CreatedAt: s.now(),
	}
	if err := s.productRepo.Create(p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *Service) UpdateProduct(id string, in ProductInput) (*models.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, notFound("product", id, err)
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Variant = strings.TrimSpace(in.Variant)
	p.Price = in.Price
	if err := s.productRepo.Save(p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes the product from the catalog. Issued bills keep
// their own copy of it.
func (s *Service) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.productRepo.Delete(id); err != nil {
		return notFound("product", id, err)
	}
	delete(s.draft.Quantities, id)
	return nil
}

func (s *Service) ListCustomers() ([]models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customerRepo.List()
}

func (s *Service) CreateCustomer(in CustomerInput) (*models.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &models.Customer{
		ID:             "cust-" + uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		PriceOverrides: datatypes.NewJSONType(pricing.SanitizeOverrides(in.PriceOverrides)),
		CreatedAt:      s.now(),
	}
	if err := s.customerRepo.Create(c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *Service) UpdateCustomer(id string, in CustomerInput) (*models.Customer, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, notFound("customer", id, err)
	}
	c.Name = strings.TrimSpace(in.Name)
	c.PriceOverrides = datatypes.NewJSONType(pricing.SanitizeOverrides(in.PriceOverrides))
	if err := s.customerRepo.Save(c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

func (s *Service) DeleteCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.customerRepo.Delete(id); err != nil {
		return notFound("customer", id, err)
	}
	return nil
}

// Snapshot returns deep copies of the catalog; later edits do not reach them.
func (s *Service) Snapshot() (Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.productRepo.List()
	if err != nil {
		return Catalog{}, err
	}
	customers, err := s.customerRepo.List()
	if err != nil {
		return Catalog{}, err
	}
	for i := range customers {
		customers[i].PriceOverrides = datatypes.NewJSONType(customers[i].Overrides().Clone())
	}
	return Catalog{Products: products, Customers: customers}, nil
}

// ---- order ----

// Order returns the draft and what it would bill right now.
func (s *Service) Order() (OrderView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, customer, err := s.orderInputs()
	if err != nil {
		return OrderView{}, err
	}
	view := OrderView{CustomerID: s.draft.CustomerID, Quantities: s.draft.Copy().Quantities}
	if customer == nil {
		view.Order = Order{Items: []models.OrderItem{}, Subtotal: decimal.Zero}
		return view, nil
	}
	view.Order, err = BuildOrder(products, customer, s.draft.Quantities)
	return view, err
}

func (s *Service) SelectCustomer(id string) (OrderView, error) {
	s.mu.Lock()
	if _, err := s.customerRepo.GetByID(id); err != nil {
		s.mu.Unlock()
		return OrderView{}, notFound("customer", id, err)
	}
	s.draft.CustomerID = id
	s.mu.Unlock()
	return s.Order()
}

// SetQuantity stores the quantity for a catalog product; negatives become 0.
func (s *Service) SetQuantity(productID string, q int) (OrderView, error) {
	return s.changeQuantity(productID, func(d *Draft) { d.SetQuantity(productID, q) })
}

// AdjustQuantity adds delta to the product's quantity without going below 0.
func (s *Service) AdjustQuantity(productID string, delta int) (OrderView, error) {
	return s.changeQuantity(productID, func(d *Draft) { d.AdjustQuantity(productID, delta) })
}

func (s *Service) changeQuantity(productID string, apply func(*Draft)) (OrderView, error) {
	s.mu.Lock()
	if _, err := s.productRepo.GetByID(productID); err != nil {
		s.mu.Unlock()
		return OrderView{}, notFound("product", productID, err)
	}
	apply(s.draft)
	s.mu.Unlock()
	return s.Order()
}

// GenerateBill prices the draft, issues the bill, puts it at the head of the
// ledger and makes it the active bill. The draft quantities are cleared.
func (s *Service) GenerateBill() (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, customer, err := s.orderInputs()
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrMissingCustomer
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}
	order, err := BuildOrder(products, customer, s.draft.Quantities)
	if err != nil {
		return nil, err
	}
	bill, err := CreateBill(customer, order.Items, order.Subtotal, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.append(bill); err != nil {
		return nil, err
	}
	s.draft.ClearQuantities()
	log.Printf("Bill %s issued: customer=%s items=%d total=%s", bill.ID, customer.Name, len(order.Items), bill.Total.StringFixed(2))
	return bill, nil
}

// NewOrder clears the active bill and the draft quantities.
func (s *Service) NewOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeBillID = ""
	s.draft.ClearQuantities()
}

// orderInputs loads the catalog and resolves the draft's customer. A missing
// or deleted selection falls back to the first customer.
func (s *Service) orderInputs() ([]models.Product, *models.Customer, error) {
	products, err := s.productRepo.List()
	if err != nil {
		return nil, nil, err
	}
	var customer *models.Customer
	if s.draft.CustomerID != "" {
		customer, err = s.customerRepo.GetByID(s.draft.CustomerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
	}
	if customer == nil {
		customer, err = s.customerRepo.First()
		if err != nil {
			return nil, nil, err
		}
		s.draft.CustomerID = ""
		if customer != nil {
			s.draft.CustomerID = customer.ID
		}
	}
	return products, customer, nil
}

// ---- ledger ----

// Append stores an issued bill and makes it the active bill.
func (s *Service) Append(bill *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.append(bill)
}

func (s *Service) append(bill *models.Bill) error {
	if err := s.billRepo.Append(bill); err != nil {
		return fmt.Errorf("store bill: %w", err)
	}
	s.activeBillID = bill.ID
	return nil
}

// Bills returns the ledger, most recent first.
func (s *Service) Bills() ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.billRepo.List()
}

func (s *Service) FindBill(id string) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, err := s.billRepo.GetByID(id)
	if err != nil {
		return nil, notFound("bill", id, err)
	}
	return bill, nil
}

// ActiveBill returns the bill on display, or nil when there is none. It is
// read from the ledger, so amendments show up immediately.
func (s *Service) ActiveBill() (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeBillID == "" {
		return nil, nil
	}
	bill, err := s.billRepo.GetByID(s.activeBillID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.activeBillID = ""
		return nil, nil
	}
	return bill, err
}

// ViewBill makes a bill from history the active bill.
func (s *Service) ViewBill(id string) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, err := s.billRepo.GetByID(id)
	if err != nil {
		return nil, notFound("bill", id, err)
	}
	s.activeBillID = bill.ID
	return bill, nil
}

// AmendPayment replaces the bill's paid amount. It reports changed=false and
// writes nothing when the amount equals the current one. Nothing else on the
// bill changes.
func (s *Service) AmendPayment(id string, paid decimal.Decimal) (*models.Bill, bool, error) {
	if paid.IsNegative() {
		return nil, false, fmt.Errorf("%w: paid amount must not be negative", ErrInvalidAmount)
	}
	if !pricing.ValidAmount(paid) {
		return nil, false, fmt.Errorf("%w: paid amount must be at most %s with two decimal places", ErrInvalidAmount, pricing.MaxAmount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		updated *models.Bill
		changed bool
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		bills := s.billRepo.WithTx(tx)
		bill, err := bills.GetByID(id)
		if err != nil {
			return notFound("bill", id, err)
		}
		if bill.PaidAmount.Equal(paid) {
			updated = bill
			return nil
		}
		if err := bills.UpdatePaidAmount(id, paid); err != nil {
			return notFound("bill", id, err)
		}
		amendment := &models.PaymentAmendment{
			ID:           uuid.New(),
			BillID:       id,
			PreviousPaid: bill.PaidAmount,
			NewPaid:      paid,
			CreatedAt:    s.now(),
		}
		if err := s.paymentRepo.WithTx(tx).Create(amendment); err != nil {
			return fmt.Errorf("record amendment: %w", err)
		}
		bill.PaidAmount = paid
		updated, changed = bill, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if changed {
		log.Printf("Bill %s payment amended: paid=%s due=%s", id, paid.StringFixed(2), updated.Due().StringFixed(2))
	}
	return updated, changed, nil
}

// Payments lists the paid-amount changes of a bill, oldest first.
func (s *Service) Payments(billID string) ([]models.PaymentAmendment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.billRepo.GetByID(billID); err != nil {
		return nil, notFound("bill", billID, err)
	}
	return s.paymentRepo.ListByBill(billID)
}

func notFound(kind, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return err
}
