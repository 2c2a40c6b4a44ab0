// Package order 订单领域。
package order

import "fmt"

// Order 订单
type Order struct {
	MemberID      int64
	ItemName      string
	ItemPrice     int
	DiscountPrice int
}

// CalculatePrice 返回折后价格
func (o Order) CalculatePrice() int {
	return o.ItemPrice - o.DiscountPrice
}

func (o Order) String() string {
	return fmt.Sprintf("Order{memberId=%d, itemName=%s, itemPrice=%d, discountPrice=%d}",
		o.MemberID, o.ItemName, o.ItemPrice, o.DiscountPrice)
}
