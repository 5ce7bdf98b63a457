package backoffice

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Summary holds the collection counts shown on the dashboard home screen
type Summary struct {
	Products int
	Users    int
	Clients  int
	Orders   int
}

// FetchSummary fetches the four collections in parallel and returns their
// counts. The first failure cancels the remaining fetches.
func (c *Client) FetchSummary(ctx context.Context) (*Summary, error) {
	g, ctx := errgroup.WithContext(ctx)
	summary := &Summary{}

	g.Go(func() error {
		products, err := c.ListProducts(ctx)
		if err != nil {
			return err
		}
		summary.Products = len(products)
		return nil
	})

	g.Go(func() error {
		users, err := c.ListUsers(ctx)
		if err != nil {
			return err
		}
		summary.Users = len(users)
		return nil
	})

	g.Go(func() error {
		clients, err := c.ListClients(ctx)
		if err != nil {
			return err
		}
		summary.Clients = len(clients)
		return nil
	})

	g.Go(func() error {
		orders, err := c.ListOrders(ctx)
		if err != nil {
			return err
		}
		summary.Orders = len(orders)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
