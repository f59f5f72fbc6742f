// Package view maps catalog and cart data to presentation-neutral view models and
// renders them as text or HTML.
package view

import (
	"strconv"

	"storefront/internal/entity"
)

const CurrencySymbol = "₹"

type ActionKind string

const (
	ActionAddToCart      ActionKind = "add-to-cart"
	ActionRemoveFromCart ActionKind = "remove-from-cart"
)

// Action is a user-triggerable operation bound to a specific book.
type Action struct {
	Kind   ActionKind
	Label  string
	BookID string
}

type CatalogEntry struct {
	BookID     string
	Title      string
	Author     string
	PriceLabel string
	ImageURL   string
	ImageAlt   string
	Action     Action
}

// Catalog is the catalog display. Unavailable marks a display cleared because
// the catalog could not be loaded, as opposed to an empty catalog.
type Catalog struct {
	Entries     []CatalogEntry
	Unavailable bool
}

type CartRow struct {
	BookID     string
	Title      string
	PriceLabel string
	Action     Action
}

type Cart struct {
	Rows        []CartRow
	Unavailable bool
}

// PriceLabel formats a price with the currency prefix and the shortest decimal
// representation, e.g. 10 -> "₹10", 10.5 -> "₹10.5".
func PriceLabel(price float64) string {
	return CurrencySymbol + strconv.FormatFloat(price, 'f', -1, 64)
}

func NewCatalog(books []entity.Book) Catalog {
	entries := make([]CatalogEntry, 0, len(books))
	for _, b := range books {
		entries = append(entries, CatalogEntry{
			BookID:     b.ID,
			Title:      b.Title,
			Author:     b.Author,
			PriceLabel: PriceLabel(b.Price),
			ImageURL:   b.Image,
			ImageAlt:   b.Title,
			Action:     Action{Kind: ActionAddToCart, Label: "Add to Cart", BookID: b.ID},
		})
	}
	return Catalog{Entries: entries}
}

func NewCart(items []entity.CartItem) Cart {
	rows := make([]CartRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, CartRow{
			BookID:     item.Book.ID,
			Title:      item.Book.Title,
			PriceLabel: PriceLabel(item.Book.Price),
			Action:     Action{Kind: ActionRemoveFromCart, Label: "Remove", BookID: item.Book.ID},
		})
	}
	return Cart{Rows: rows}
}
