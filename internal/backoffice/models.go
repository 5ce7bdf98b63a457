package backoffice

import (
	"encoding/json"
	"time"
)

// Product represents a persisted product record returned by the API.
// JSON keys follow the server's field names (the backend is French-named);
// the client never computes this shape locally, it only decodes what the
// server returns.
type Product struct {
	ID            string    `json:"_id"`
	Title         string    `json:"titre"`
	Description   string    `json:"description"`
	Image         string    `json:"image,omitempty"`
	Price         float64   `json:"prix"`
	StockQuantity int       `json:"quantityStock"`
	CreatedAt     time.Time `json:"createdAt"`
}

// User represents a back-office user account record
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  *bool     `json:"isActive,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Active reports whether the account is active.
// The API omits isActive for legacy records, which count as active.
func (u *User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// RoleLabel returns the display label for the user's role
func (u *User) RoleLabel() string {
	if u.Role == "admin" {
		return "Administrator"
	}
	return "User"
}

// StatusLabel returns the display label for the account status
func (u *User) StatusLabel() string {
	if u.Active() {
		return "Active"
	}
	return "Inactive"
}

// Customer represents a shop customer (client) record
type Customer struct {
	ID        string    `json:"_id"`
	Name      string    `json:"nom"`
	Email     string    `json:"email"`
	Phone     string    `json:"telephone,omitempty"`
	Address   string    `json:"adresse,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order represents an order (commande) record
type Order struct {
	ID        string    `json:"_id"`
	ClientID  string    `json:"client"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Payload is an encoded submission body ready for one POST request.
// BuildPayload in the draft package produces these; Submit consumes them.
type Payload struct {
	ContentType string
	Body        []byte
}

// IsMultipart reports whether the payload carries staged file attachments
func (p *Payload) IsMultipart() bool {
	return p != nil && len(p.ContentType) >= 19 && p.ContentType[:19] == "multipart/form-data"
}

// Response envelopes. Collection keys are decoded through pointers so a
// missing key can be told apart from an empty list: absent or mistyped keys
// are an unexpected-format error, never an empty result.

// ParseProductList decodes the GET /prod/getAllProduit response body
func ParseProductList(data []byte) ([]Product, error) {
	var envelope struct {
		ProduitList *[]Product `json:"produitList"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, NewFormatError("failed to decode product list response", err)
	}
	if envelope.ProduitList == nil {
		return nil, NewFormatError("response is missing the produitList collection", nil)
	}
	return *envelope.ProduitList, nil
}

// ParseUserList decodes the GET /user/getAllUser response body
func ParseUserList(data []byte) ([]User, error) {
	var envelope struct {
		UserList *[]User `json:"userList"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, NewFormatError("failed to decode user list response", err)
	}
	if envelope.UserList == nil {
		return nil, NewFormatError("response is missing the userList collection", nil)
	}
	return *envelope.UserList, nil
}

// ParseClientList decodes the GET /client/getAllClient response body
func ParseClientList(data []byte) ([]Customer, error) {
	var envelope struct {
		ClientList *[]Customer `json:"clientList"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, NewFormatError("failed to decode client list response", err)
	}
	if envelope.ClientList == nil {
		return nil, NewFormatError("response is missing the clientList collection", nil)
	}
	return *envelope.ClientList, nil
}

// ParseOrderList decodes the GET /commande/getAllCommande response body
func ParseOrderList(data []byte) ([]Order, error) {
	var envelope struct {
		CommandeList *[]Order `json:"commandeList"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, NewFormatError("failed to decode order list response", err)
	}
	if envelope.CommandeList == nil {
		return nil, NewFormatError("response is missing the commandeList collection", nil)
	}
	return *envelope.CommandeList, nil
}

// ParseCreatedProduct decodes the entity returned by POST /prod/addProduit.
// The server wraps the created record in a "produit" key; some deployments
// return the bare record, so both shapes are accepted. An empty body is not
// an error - the caller falls back to refetching the list.
func ParseCreatedProduct(data []byte) (*Product, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var envelope struct {
		Produit *Product `json:"produit"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Produit != nil {
		return envelope.Produit, nil
	}

	var product Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, NewFormatError("failed to decode created product response", err)
	}
	return &product, nil
}

// parseErrorMessage extracts the error text from a failure response body.
// The API uses {"message": ...} for most errors and {"error": ...} for a few
// older handlers. Returns empty string when neither is present.
func parseErrorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
