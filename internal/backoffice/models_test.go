package backoffice

import (
	"testing"
)

func TestParseProductList(t *testing.T) {
	body := []byte(`{"produitList":[
		{"_id":"p1","titre":"Chair","description":"Wooden chair","prix":49.99,"quantityStock":5},
		{"_id":"p2","titre":"Lamp","description":"Desk lamp","prix":19.99,"quantityStock":0}
	]}`)

	products, err := ParseProductList(body)
	if err != nil {
		t.Fatalf("ParseProductList() error = %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Title != "Chair" || products[0].Price != 49.99 || products[0].StockQuantity != 5 {
		t.Errorf("products[0] = %+v", products[0])
	}
}

func TestParseProductList_EmptyListIsNotAnError(t *testing.T) {
	products, err := ParseProductList([]byte(`{"produitList":[]}`))
	if err != nil {
		t.Fatalf("ParseProductList() error = %v", err)
	}
	if len(products) != 0 {
		t.Errorf("got %d products, want 0", len(products))
	}
}

func TestParseProductList_MissingKeyIsFormatError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"wrong key", `{"products":[]}`},
		{"null collection", `{"produitList":null}`},
		{"not json", `<html>502 Bad Gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProductList([]byte(tt.body))
			if !IsFormatError(err) {
				t.Errorf("ParseProductList(%q) error = %v, want format error", tt.body, err)
			}
		})
	}
}

func TestParseUserList_MissingKeyIsFormatError(t *testing.T) {
	if _, err := ParseUserList([]byte(`{}`)); !IsFormatError(err) {
		t.Errorf("ParseUserList({}) error = %v, want format error", err)
	}
}

func TestParseClientList(t *testing.T) {
	body := []byte(`{"clientList":[{"_id":"c1","nom":"Amira","email":"amira@example.com","telephone":"555-0101"}]}`)

	clients, err := ParseClientList(body)
	if err != nil {
		t.Fatalf("ParseClientList() error = %v", err)
	}
	if len(clients) != 1 || clients[0].Name != "Amira" || clients[0].Phone != "555-0101" {
		t.Errorf("clients = %+v", clients)
	}
}

func TestParseOrderList(t *testing.T) {
	body := []byte(`{"commandeList":[{"_id":"o1","client":"c1","total":89.50,"status":"pending"}]}`)

	orders, err := ParseOrderList(body)
	if err != nil {
		t.Fatalf("ParseOrderList() error = %v", err)
	}
	if len(orders) != 1 || orders[0].Total != 89.50 || orders[0].Status != "pending" {
		t.Errorf("orders = %+v", orders)
	}
}

func TestParseCreatedProduct(t *testing.T) {
	t.Run("enveloped record", func(t *testing.T) {
		p, err := ParseCreatedProduct([]byte(`{"produit":{"_id":"p1","titre":"Chair","prix":49.99}}`))
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if p == nil || p.ID != "p1" || p.Title != "Chair" {
			t.Errorf("product = %+v", p)
		}
	})

	t.Run("bare record", func(t *testing.T) {
		p, err := ParseCreatedProduct([]byte(`{"_id":"p2","titre":"Lamp","prix":19.99}`))
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if p == nil || p.ID != "p2" {
			t.Errorf("product = %+v", p)
		}
	})

	t.Run("empty body falls back to nil entity", func(t *testing.T) {
		p, err := ParseCreatedProduct(nil)
		if err != nil || p != nil {
			t.Errorf("ParseCreatedProduct(nil) = %v, %v; want nil, nil", p, err)
		}
	})

	t.Run("garbage is a format error", func(t *testing.T) {
		if _, err := ParseCreatedProduct([]byte(`created!`)); !IsFormatError(err) {
			t.Errorf("error = %v, want format error", err)
		}
	})
}

func TestUserActive(t *testing.T) {
	active := true
	inactive := false

	tests := []struct {
		name string
		user User
		want bool
	}{
		{"explicit active", User{IsActive: &active}, true},
		{"explicit inactive", User{IsActive: &inactive}, false},
		{"legacy record without flag", User{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Active(); got != tt.want {
				t.Errorf("Active() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserLabels(t *testing.T) {
	admin := User{Role: "admin"}
	if admin.RoleLabel() != "Administrator" {
		t.Errorf("RoleLabel() = %q", admin.RoleLabel())
	}

	inactive := false
	u := User{Role: "user", IsActive: &inactive}
	if u.RoleLabel() != "User" || u.StatusLabel() != "Inactive" {
		t.Errorf("labels = %q/%q", u.RoleLabel(), u.StatusLabel())
	}
}

func TestParseErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message key", `{"message":"db down"}`, "db down"},
		{"error key", `{"error":"bad request"}`, "bad request"},
		{"message wins over error", `{"message":"first","error":"second"}`, "first"},
		{"neither", `{}`, ""},
		{"not json", `oops`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseErrorMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("parseErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
