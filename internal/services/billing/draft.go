package billing

// Draft is the order being assembled on the new-order screen.
type Draft struct {
	CustomerID string     `json:"customer_id"`
	Quantities Quantities `json:"quantities"`
}

func NewDraft() *Draft {
	return &Draft{Quantities: Quantities{}}
}

// SetQuantity stores q for the product, never below zero, and returns the stored value.
func (d *Draft) SetQuantity(productID string, q int) int {
	if q <= 0 {
		delete(d.Quantities, productID)
		return 0
	}
	d.Quantities[productID] = q
	return q
}

// AdjustQuantity adds delta to the current quantity, clamped at zero.
func (d *Draft) AdjustQuantity(productID string, delta int) int {
	return d.SetQuantity(productID, d.Quantities[productID]+delta)
}

func (d *Draft) ClearQuantities() {
	d.Quantities = Quantities{}
}

// Copy returns a draft that shares nothing with d.
func (d *Draft) Copy() Draft {
	q := make(Quantities, len(d.Quantities))
	for id, n := range d.Quantities {
		q[id] = n
	}
	return Draft{CustomerID: d.CustomerID, Quantities: q}
}
