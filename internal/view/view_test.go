package view

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"storefront/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLabel(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{10, "₹10"},
		{10.5, "₹10.5"},
		{0, "₹0"},
		{499.99, "₹499.99"},
		{1200, "₹1200"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriceLabel(tt.price))
	}
}

func TestNewCatalog(t *testing.T) {
	t.Run("one entry per book", func(t *testing.T) {
		c := NewCatalog([]entity.Book{{ID: "1", Title: "X", Author: "Y", Price: 10, Image: "i.png"}})

		require.Len(t, c.Entries, 1)
		e := c.Entries[0]
		assert.Equal(t, "X", e.Title)
		assert.Equal(t, "Y", e.Author)
		assert.Equal(t, "₹10", e.PriceLabel)
		assert.Equal(t, "i.png", e.ImageURL)
		assert.Equal(t, "X", e.ImageAlt)
		assert.Equal(t, Action{Kind: ActionAddToCart, Label: "Add to Cart", BookID: "1"}, e.Action)
	})

	t.Run("empty collection", func(t *testing.T) {
		assert.Empty(t, NewCatalog(nil).Entries)
	})
}

func TestNewCart(t *testing.T) {
	c := NewCart([]entity.CartItem{
		{Book: entity.CartBook{ID: "b1", Title: "Go", Price: 25}},
		{Book: entity.CartBook{ID: "b2", Title: "Rust", Price: 30.25}},
	})

	require.Len(t, c.Rows, 2)
	assert.Equal(t, "b1", c.Rows[0].Action.BookID)
	assert.Equal(t, ActionRemoveFromCart, c.Rows[0].Action.Kind)
	assert.Equal(t, "₹30.25", c.Rows[1].PriceLabel)
}

func TestTextPresenter(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	p := NewTextPresenter(&buf)

	require.NoError(t, p.ShowCatalog(ctx, NewCatalog([]entity.Book{{ID: "1", Title: "X", Author: "Y", Price: 10}})))
	assert.Contains(t, buf.String(), "TITLE")
	assert.Contains(t, buf.String(), "by Y")
	assert.Contains(t, buf.String(), "₹10")

	buf.Reset()
	require.NoError(t, p.ShowCatalog(ctx, Catalog{}))
	assert.Equal(t, "No books available.\n", buf.String())

	buf.Reset()
	require.NoError(t, p.ShowCart(ctx, Cart{}))
	assert.Equal(t, "Your cart is empty.\n", buf.String())

	buf.Reset()
	require.NoError(t, p.ShowCatalog(ctx, Catalog{Unavailable: true}))
	require.NoError(t, p.ShowCart(ctx, Cart{Unavailable: true}))
	assert.Empty(t, buf.String(), "a cleared display prints nothing")

	buf.Reset()
	p.Notify(ctx, "Book added to cart!")
	p.Navigate(ctx, "/login.html")
	assert.Equal(t, "Book added to cart!\n-> /login.html\n", buf.String())
}

func TestHTMLPresenter(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog markup", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewHTMLPresenter(&buf)
		require.NoError(t, p.ShowCatalog(ctx, NewCatalog([]entity.Book{{ID: "1", Title: "X", Author: "Y", Price: 10, Image: "i.png"}})))

		out := buf.String()
		assert.Equal(t, 1, strings.Count(out, `class="book-card"`))
		assert.Contains(t, out, `<img src="i.png" alt="X">`)
		assert.Contains(t, out, "<h3>X</h3>")
		assert.Contains(t, out, "<p>₹10</p>")
		assert.Contains(t, out, `data-book-id="1"`)
	})

	t.Run("escapes api values", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewHTMLPresenter(&buf)
		require.NoError(t, p.ShowCart(ctx, NewCart([]entity.CartItem{
			{Book: entity.CartBook{ID: "x", Title: "<script>alert(1)</script>", Price: 1}},
		})))

		out := buf.String()
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
		assert.Contains(t, out, `class="cart-item"`)
	})

	t.Run("empty catalog renders empty container", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewHTMLPresenter(&buf)
		require.NoError(t, p.ShowCatalog(ctx, Catalog{}))
		assert.NotContains(t, buf.String(), "book-card")
	})

	t.Run("unavailable cart renders empty container", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewHTMLPresenter(&buf)
		require.NoError(t, p.ShowCart(ctx, Cart{Unavailable: true}))
		assert.Contains(t, buf.String(), `<div id="cart-list">`)
		assert.NotContains(t, buf.String(), "cart-item")
	})
}
