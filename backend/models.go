package backend

// Page is the platform's paged list envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// Customer is a billing customer record.
type Customer struct {
	ID      int64  `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	UserID  int64  `json:"userId,omitempty"`
}

// Bill is an electricity bill issued to a customer.
type Bill struct {
	ID            int64   `json:"id,omitempty"`
	BillNumber    string  `json:"billNumber,omitempty"`
	CustomerID    int64   `json:"customerId,omitempty"`
	CustomerName  string  `json:"customerName,omitempty"`
	UnitsConsumed float64 `json:"unitsConsumed,omitempty"`
	BillingDate   string  `json:"billingDate,omitempty"`
	DueDate       string  `json:"dueDate,omitempty"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status,omitempty"`
}

// Payment is a recorded payment against a bill.
type Payment struct {
	ID            int64   `json:"id,omitempty"`
	BillID        int64   `json:"billId,omitempty"`
	ReceiptNumber string  `json:"receiptNumber,omitempty"`
	CustomerName  string  `json:"customerName,omitempty"`
	AmountPaid    float64 `json:"amountPaid"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	TransactionID string  `json:"transactionId,omitempty"`
	PaymentDate   string  `json:"paymentDate,omitempty"`
}

// Meter is an installed electricity meter.
type Meter struct {
	ID               int64  `json:"id,omitempty"`
	MeterNumber      string `json:"meterNumber"`
	MeterType        string `json:"meterType,omitempty"`
	Status           string `json:"status,omitempty"`
	InstallationDate string `json:"installationDate,omitempty"`
	CustomerID       int64  `json:"customerId,omitempty"`
	CustomerName     string `json:"customerName,omitempty"`
}

// User is a platform login account as managed from the admin console. The
// user management endpoints carry roles as a list of prefixed tags
// ("ROLE_ADMIN"), unlike the login reply's single bare role.
type User struct {
	ID        int64    `json:"id,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Email     string   `json:"email"`
	Password  string   `json:"password,omitempty"`
	Roles     []string `json:"roles,omitempty"`
	Enabled   bool     `json:"enabled"`
}

// Location is a node of the administrative location tree used during
// registration and customer provisioning.
type Location struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	ParentID int64  `json:"parentId,omitempty"`
}
