package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidEnvelope is returned for envelopes that fail validation.
var ErrInvalidEnvelope = errors.New("invalid request envelope")

// Category groups related gateway operations.
type Category string

const (
	CategoryTransaction    Category = "transaction"
	CategorySubscription   Category = "subscription"
	CategoryCustomerVault  Category = "customerVault"
	CategoryProductManager Category = "productManager"
	CategoryInvoice        Category = "invoice"
)

// Operation is the gateway parameter set selected by an action.
type Operation struct {
	// Param is the gateway field naming the operation, e.g. "type".
	Param string
	// Value is the operation, e.g. "sale".
	Value string
	// Fixed holds extra parameters the action always sends.
	Fixed map[string]string
}

// dispatch maps every category and action to its gateway operation.
var dispatch = map[Category]map[string]Operation{
	CategoryTransaction: {
		"create":    {Param: "type", Value: "sale"},
		"authorize": {Param: "type", Value: "auth"},
		"validate":  {Param: "type", Value: "validate"},
		"capture":   {Param: "type", Value: "capture"},
		"refund":    {Param: "type", Value: "refund"},
		"void":      {Param: "type", Value: "void"},
		"update":    {Param: "type", Value: "update"},
	},
	CategorySubscription: {
		"addPlan":               {Param: "recurring", Value: "add_plan"},
		"editPlan":              {Param: "recurring", Value: "edit_plan"},
		"addCustomByAch":        {Param: "recurring", Value: "add_subscription", Fixed: map[string]string{"payment": "check"}},
		"addCustomByCreditCard": {Param: "recurring", Value: "add_subscription", Fixed: map[string]string{"payment": "creditcard"}},
		"updateSubscription":    {Param: "recurring", Value: "update_subscription"},
		"deleteSubscription":    {Param: "recurring", Value: "delete_subscription"},
	},
	CategoryCustomerVault: {
		"addCustomer":         {Param: "customer_vault", Value: "add_customer"},
		"updateCustomer":      {Param: "customer_vault", Value: "update_customer"},
		"initiateTransaction": {Param: "type", Value: "sale"},
		"validateCustomer":    {Param: "type", Value: "validate"},
		"authorizeCustomer":   {Param: "type", Value: "auth"},
		"creditTransaction":   {Param: "type", Value: "credit"},
		"offlineTransaction":  {Param: "type", Value: "offline"},
		"addBilling":          {Param: "customer_vault", Value: "add_billing"},
		"updateBilling":       {Param: "customer_vault", Value: "update_billing"},
		"deleteBilling":       {Param: "customer_vault", Value: "delete_billing"},
		"deleteCustomer":      {Param: "customer_vault", Value: "delete_customer"},
	},
	CategoryProductManager: {
		"addProduct":    {Param: "products", Value: "add_product"},
		"updateProduct": {Param: "products", Value: "update_product"},
		"deleteProduct": {Param: "products", Value: "delete_product"},
	},
	CategoryInvoice: {
		"create": {Param: "invoicing", Value: "add_invoice"},
		"update": {Param: "invoicing", Value: "update_invoice"},
		"close":  {Param: "invoicing", Value: "close_invoice"},
		"send":   {Param: "invoicing", Value: "send_invoice"},
	},
}

// Categories returns every category, sorted.
func Categories() []string {
	out := make([]string, 0, len(dispatch))
	for c := range dispatch {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

// Actions returns the actions of a category, sorted.
func Actions(c Category) []string {
	out := make([]string, 0, len(dispatch[c]))
	for a := range dispatch[c] {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Envelope is a relay request.
type Envelope struct {
	RequestCategory Category               `json:"requestCategory"`
	RequestAction   string                 `json:"requestAction"`
	InitiatedBy     string                 `json:"initiatedBy"`
	Data            map[string]interface{} `json:"data"`
}

// wireEnvelope distinguishes a missing initiatedBy from an empty one.
type wireEnvelope struct {
	RequestCategory Category        `json:"requestCategory"`
	RequestAction   string          `json:"requestAction"`
	InitiatedBy     *string         `json:"initiatedBy"`
	Data            json.RawMessage `json:"data"`
}

// ParseEnvelope decodes and validates a JSON envelope.
func ParseEnvelope(raw []byte) (Envelope, Operation, error) {
	var w wireEnvelope
	if err := json.Unmarshal(raw, &w); err != nil {
		return Envelope{}, Operation{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if w.InitiatedBy == nil {
		return Envelope{}, Operation{}, fmt.Errorf("%w: initiatedBy is required", ErrInvalidEnvelope)
	}

	env := Envelope{
		RequestCategory: w.RequestCategory,
		RequestAction:   w.RequestAction,
		InitiatedBy:     *w.InitiatedBy,
	}

	trimmed := strings.TrimSpace(string(w.Data))
	if trimmed != "" && trimmed != "null" {
		if err := json.Unmarshal(w.Data, &env.Data); err != nil {
			return Envelope{}, Operation{}, fmt.Errorf("%w: data must be an object", ErrInvalidEnvelope)
		}
	}

	op, err := env.Operation()
	if err != nil {
		return Envelope{}, Operation{}, err
	}
	return env, op, nil
}

// Operation validates the category and action and returns the gateway
// operation they select.
func (e Envelope) Operation() (Operation, error) {
	actions, ok := dispatch[e.RequestCategory]
	if !ok {
		return Operation{}, fmt.Errorf("%w: unknown requestCategory %q (expected one of %s)",
			ErrInvalidEnvelope, e.RequestCategory, strings.Join(Categories(), ", "))
	}
	op, ok := actions[e.RequestAction]
	if !ok {
		return Operation{}, fmt.Errorf("%w: unknown requestAction %q for %s (expected one of %s)",
			ErrInvalidEnvelope, e.RequestAction, e.RequestCategory, strings.Join(Actions(e.RequestCategory), ", "))
	}
	return op, nil
}
