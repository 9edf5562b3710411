package domain

// CheckoutState tracks a single purchase attempt from the moment the
// buyer opens the payment modal until verification settles. Every
// failure state is terminal; the buyer restarts the purchase by hand.
type CheckoutState string

const (
	CheckoutIdle            CheckoutState = "IDLE"
	CheckoutModalOpen       CheckoutState = "MODAL_OPEN"
	CheckoutProcessing      CheckoutState = "PROCESSING"
	CheckoutRedirected      CheckoutState = "REDIRECTED"
	CheckoutVerifying       CheckoutState = "VERIFYING"
	CheckoutVerifiedSuccess CheckoutState = "VERIFIED_SUCCESS"
	CheckoutVerifiedError   CheckoutState = "VERIFIED_ERROR"
)
