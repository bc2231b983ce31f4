package constants

// Keys under which client state is persisted.
const (
	StorageKeyAuthToken = "auth_token"
	StorageKeyTheme     = "theme_preference"
)

const (
	ThemeDark    = "dark"
	ThemeLight   = "light"
	DefaultTheme = ThemeLight
)

const (
	ErrNetwork      = "Network error. Please check your connection."
	ErrUnauthorized = "Unauthorized access. Please login again."
	ErrNotFound     = "Resource not found."
	ErrServer       = "Server error. Please try again later."
	ErrValidation   = "Please check your input and try again."

	ErrFetchTransactions = "Failed to fetch transactions"
	ErrFetchDashboard    = "Failed to fetch dashboard data"
	ErrFetchStatus       = "Failed to fetch transaction status"
	ErrCreatePayment     = "Failed to create payment"
	ErrLoginFailed       = "Login failed"
	ErrNoCredential      = "No credential returned from server"
	ErrSessionLoading    = "Session is still initializing"
)

const (
	MsgPaymentCreated = "Payment processed successfully."
	MsgLoginSuccess   = "Login successful."
	MsgLogoutSuccess  = "Logged out successfully."
	MsgDataSaved      = "Data saved successfully."
)
