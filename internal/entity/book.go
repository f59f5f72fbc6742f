package entity

type Book struct {
	ID     string  `json:"_id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
	Image  string  `json:"image"`
}

// CartBook is the subset of a book the cart endpoint embeds in each item.
type CartBook struct {
	ID    string  `json:"_id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

// CartItem is one line of the server-owned cart. Quantity is implied as 1 per add.
type CartItem struct {
	Book CartBook `json:"book"`
}
