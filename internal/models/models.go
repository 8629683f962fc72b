package models

// ListEventsResponse - список событий
type ListEventsResponse []Event

// CategoriesResponse - список категорий каталога
type CategoriesResponse []string

// RecommendationRequest - запрос персональных рекомендаций
type RecommendationRequest struct {
	UserPreferences string `json:"userPreferences" binding:"required,min=3"`
	PastBookings    string `json:"pastBookings"`
}

// RecommendationResult - разобранный ответ генератора
type RecommendationResult struct {
	Recommendations []string `json:"recommendations"`
}

// RecommendationsResponse - ответ на запрос рекомендаций
type RecommendationsResponse struct {
	Recommendations []string `json:"recommendations"`
	Events          []Event  `json:"events"`
	Message         string   `json:"message,omitempty"`
}

// RecommendationSeedResponse - начальное значение формы рекомендаций
type RecommendationSeedResponse struct {
	PastBookings string `json:"pastBookings"`
}

// ReservationsResponse - бронирования пользователя по корзинам
type ReservationsResponse struct {
	Upcoming []Reservation `json:"upcoming"`
	Past     []Reservation `json:"past"`
}

// CheckoutRequest - данные карты для симулированной оплаты
type CheckoutRequest struct {
	CardName     string `json:"cardName" binding:"required,min=2"`
	CardNumber   string `json:"cardNumber" binding:"required,cardnumber"`
	ExpiryDate   string `json:"expiryDate" binding:"required,expiry"`
	CVC          string `json:"cvc" binding:"required,cvc"`
	TicketTypeID string `json:"ticketTypeId,omitempty"`
}

// BookingConfirmation - результат подтверждения бронирования
type BookingConfirmation struct {
	Status      string      `json:"status"`
	Event       Event       `json:"event"`
	TicketType  TicketType  `json:"ticketType"`
	Total       float64     `json:"total"`
	PaymentID   string      `json:"paymentId"`
	Reservation Reservation `json:"reservation"`
}

// SignupRequest - регистрация пользователя
type SignupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginRequest - вход пользователя
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// AuthResponse - ответ после успешного входа или регистрации
type AuthResponse struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to"`
}

// ConfirmationEmailRequest - данные письма-подтверждения
type ConfirmationEmailRequest struct {
	UserEmail     string `json:"userEmail"`
	EventName     string `json:"eventName"`
	EventDate     string `json:"eventDate"`
	EventLocation string `json:"eventLocation"`
}

// ConfirmationEmailResult - результат отправки письма
type ConfirmationEmailResult struct {
	Success bool `json:"success"`
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}
