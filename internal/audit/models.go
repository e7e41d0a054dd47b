package audit

import (
	"fmt"
	"time"

	"github.com/mssola/useragent"
)

// Category groups audit actions by who consumes them downstream.
type Category string

const (
	CategorySecurity   Category = "security"
	CategoryCommerce   Category = "commerce"
	CategoryOperations Category = "operations"
)

// Action names a storefront event worth keeping a trail of.
type Action string

const (
	ActionSignIn          Action = "sign_in"
	ActionSignInFailed    Action = "sign_in_failed"
	ActionSignUp          Action = "sign_up"
	ActionSignOut         Action = "sign_out"
	ActionSessionCleared  Action = "session_cleared_unauthorized"
	ActionPasswordChanged Action = "password_changed"
	ActionProfileUpdated  Action = "profile_updated"
	ActionOrderPlaced     Action = "order_placed"
	ActionCheckoutStarted Action = "checkout_session_started"
	ActionAddressAdded    Action = "address_added"
	ActionAddressRemoved  Action = "address_removed"
)

var actionCategories = map[Action]Category{
	ActionSignIn:          CategorySecurity,
	ActionSignInFailed:    CategorySecurity,
	ActionSignUp:          CategorySecurity,
	ActionSignOut:         CategorySecurity,
	ActionSessionCleared:  CategorySecurity,
	ActionPasswordChanged: CategorySecurity,
	ActionProfileUpdated:  CategorySecurity,

	ActionOrderPlaced:     CategoryCommerce,
	ActionCheckoutStarted: CategoryCommerce,
}

// Category returns the category of the action. Unknown actions are
// operational.
func (a Action) Category() Category {
	if c, ok := actionCategories[a]; ok {
		return c
	}
	return CategoryOperations
}

// Event is emitted from services to capture key shopper actions. It stays
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Action    Action    `json:"action"`
	UserID    string    `json:"user_id,omitempty"`
	Subject   string    `json:"subject,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Device    string    `json:"device,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DeviceLabel turns a User-Agent header into a short label such as
// "Firefox on Linux" or "Safari on iPhone (mobile)".
func DeviceLabel(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		name, _ := ua.Browser()
		return "bot: " + name
	}
	browser, _ := ua.Browser()
	label := browser
	if os := ua.OS(); os != "" {
		label = fmt.Sprintf("%s on %s", browser, os)
	}
	if ua.Mobile() {
		label += " (mobile)"
	}
	return label
}
