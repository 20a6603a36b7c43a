package client

import "encoding/json"

// Most string fields below carry JSON documents encoded as strings by the
// server (options, tools, flows, ...). They are passed through untouched.

// Agent is an agent definition.
type Agent struct {
	ID             string `json:"id,omitempty"`
	DisplayName    string `json:"displayName"`
	Options        string `json:"options,omitempty"`
	Prompt         string `json:"prompt,omitempty"`
	ExpectedResult string `json:"expectedResult,omitempty"`
	SafetyRules    string `json:"safetyRules,omitempty"`
	Published      string `json:"published,omitempty"`
	Events         string `json:"events,omitempty"`
	Tools          string `json:"tools,omitempty"`
	Status         string `json:"status,omitempty"`
	Locale         string `json:"locale,omitempty"`
	AgentType      string `json:"agentType,omitempty"`
	Inputs         string `json:"inputs,omitempty"`
	DefaultFlow    string `json:"defaultFlow,omitempty"`
	Flows          string `json:"flows,omitempty"`
	Agents         string `json:"agents,omitempty"`
	Icon           string `json:"icon,omitempty"`
	Extra          string `json:"extra,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

// Key is an API key record. Key material is derived client side; see the
// web application's key context for the hashing scheme.
type Key struct {
	DisplayName        string `json:"displayName"`
	KeyLocatorHash     string `json:"keyLocatorHash"`
	KeyHash            string `json:"keyHash"`
	KeyHashParams      string `json:"keyHashParams"`
	DatabaseIDHash     string `json:"databaseIdHash"`
	EncryptedMasterKey string `json:"encryptedMasterKey"`
	ACL                string `json:"acl,omitempty"`
	Extra              string `json:"extra,omitempty"`
	ExpiryDate         string `json:"expiryDate,omitempty"`
	UpdatedAt          string `json:"updatedAt,omitempty"`
}

// Attachment is a stored file.
type Attachment struct {
	ID                 *int64 `json:"id,omitempty"`
	DisplayName        string `json:"displayName,omitempty"`
	SafeNameIdentifier string `json:"safeNameIdentifier,omitempty"`
	Description        string `json:"description,omitempty"`
	MimeType           string `json:"mimeType,omitempty"`
	Type               string `json:"type,omitempty"`
	JSON               string `json:"json,omitempty"`
	Extra              string `json:"extra,omitempty"`
	Size               *int64 `json:"size"`
	StorageKey         string `json:"storageKey"`
	FilePath           string `json:"filePath,omitempty"`
	Content            string `json:"content,omitempty"`
	AssignedTo         string `json:"assignedTo,omitempty"`
	CreatedAt          string `json:"createdAt,omitempty"`
	UpdatedAt          string `json:"updatedAt,omitempty"`
}

// ChatAttachment references a file the agent can read during a chat.
type ChatAttachment struct {
	Name        string `json:"name,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	URL         string `json:"url"`
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one message of a conversation.
type ChatMessage struct {
	Role         string          `json:"role"`
	Content      string          `json:"content"`
	Name         string          `json:"name,omitempty"`
	FunctionCall json.RawMessage `json:"functionCall,omitempty"`
}

// Session is a chat session.
type Session struct {
	ID               string `json:"id"`
	AgentID          string `json:"agentId"`
	UserName         string `json:"userName,omitempty"`
	UserEmail        string `json:"userEmail,omitempty"`
	AcceptTerms      string `json:"acceptTerms,omitempty"`
	Messages         string `json:"messages,omitempty"`
	PromptTokens     *int64 `json:"promptTokens,omitempty"`
	CompletionTokens *int64 `json:"completionTokens,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	UpdatedAt        string `json:"updatedAt,omitempty"`
	FinalizedAt      string `json:"finalizedAt,omitempty"`
}

// Result is the final output of a session.
type Result struct {
	AgentID     string `json:"agentId"`
	SessionID   string `json:"sessionId"`
	UserName    string `json:"userName,omitempty"`
	UserEmail   string `json:"userEmail,omitempty"`
	Content     string `json:"content,omitempty"`
	Format      string `json:"format,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	FinalizedAt string `json:"finalizedAt,omitempty"`
}

// CalendarEvent is an agent calendar entry.
type CalendarEvent struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	AgentID      string `json:"agentId"`
	Description  string `json:"description,omitempty"`
	Exclusive    string `json:"exclusive,omitempty"`
	Start        string `json:"start,omitempty"`
	End          string `json:"end,omitempty"`
	Location     string `json:"location,omitempty"`
	AllDay       *bool  `json:"allDay,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	Participants string `json:"participants,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`
}

// Price is an amount in a currency.
type Price struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// ProductAttribute is a configurable product option.
type ProductAttribute struct {
	Name         string   `json:"name"`
	Type         string   `json:"type,omitempty"` // "text" or "select"
	Values       []string `json:"values,omitempty"`
	DefaultValue string   `json:"defaultValue,omitempty"`
}

// Dimensions are the physical measures shared by products and variants.
type Dimensions struct {
	Width      *float64 `json:"width,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	Length     *float64 `json:"length,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	WidthUnit  string   `json:"widthUnit,omitempty"`
	HeightUnit string   `json:"heightUnit,omitempty"`
	LengthUnit string   `json:"lengthUnit,omitempty"`
	WeightUnit string   `json:"weightUnit,omitempty"`
}

// ProductVariant is a sellable variant of a product.
type ProductVariant struct {
	ID           string   `json:"id,omitempty"`
	SKU          string   `json:"sku"`
	Name         string   `json:"name,omitempty"`
	Status       string   `json:"status,omitempty"`
	Price        *Price   `json:"price,omitempty"`
	PriceInclTax *Price   `json:"priceInclTax,omitempty"`
	TaxRate      *float64 `json:"taxRate,omitempty"`
	TaxValue     *float64 `json:"taxValue,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Dimensions
}

// ProductImage is a product picture.
type ProductImage struct {
	ID         string `json:"id,omitempty"`
	StorageKey string `json:"storageKey,omitempty"`
	URL        string `json:"url"`
	Alt        string `json:"alt,omitempty"`
	FileName   string `json:"fileName,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
}

// Product is a catalog product.
type Product struct {
	ID           string             `json:"id,omitempty"`
	AgentID      string             `json:"agentId,omitempty"`
	SKU          string             `json:"sku"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Price        *Price             `json:"price,omitempty"`
	PriceInclTax *Price             `json:"priceInclTax,omitempty"`
	TaxRate      *float64           `json:"taxRate,omitempty"`
	TaxValue     *float64           `json:"taxValue,omitempty"`
	Brand        string             `json:"brand,omitempty"`
	Status       string             `json:"status,omitempty"`
	ImageURL     string             `json:"imageUrl,omitempty"`
	Attributes   []ProductAttribute `json:"attributes,omitempty"`
	Variants     []ProductVariant   `json:"variants,omitempty"`
	Images       []ProductImage     `json:"images,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	CreatedAt    string             `json:"createdAt,omitempty"`
	UpdatedAt    string             `json:"updatedAt,omitempty"`
	Dimensions
}

// Order statuses.
const (
	OrderStatusShoppingCart = "shopping_cart"
	OrderStatusQuote        = "quote"
	OrderStatusNew          = "new"
	OrderStatusProcessing   = "processing"
	OrderStatusShipped      = "shipped"
	OrderStatusCompleted    = "completed"
	OrderStatusCancelled    = "cancelled"
)

// Address is a billing or shipping address.
type Address struct {
	Address1     string          `json:"address1,omitempty"`
	Address2     string          `json:"address2,omitempty"`
	City         string          `json:"city,omitempty"`
	Company      string          `json:"company,omitempty"`
	Country      json.RawMessage `json:"country,omitempty"`
	CountryCode  string          `json:"countryCode,omitempty"`
	FirstName    string          `json:"firstName,omitempty"`
	LastName     string          `json:"lastName,omitempty"`
	Name         string          `json:"name,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Province     string          `json:"province,omitempty"`
	ProvinceCode string          `json:"provinceCode,omitempty"`
	Street       string          `json:"street,omitempty"`
	Summary      string          `json:"summary,omitempty"`
	PostalCode   string          `json:"postalCode,omitempty"`
}

// Note is a free text order note.
type Note struct {
	Date    string `json:"date"`
	Message string `json:"message"`
	Author  string `json:"author,omitempty"`
}

// StatusChange records an order status transition.
type StatusChange struct {
	Date      string `json:"date"`
	Message   string `json:"message"`
	OldStatus string `json:"oldStatus,omitempty"`
	NewStatus string `json:"newStatus"`
}

// Customer identifies who placed an order.
type Customer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// CustomOption is a name/value pair chosen on an order line.
type CustomOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OrderItem is one order line.
type OrderItem struct {
	ID                             string          `json:"id"`
	Name                           string          `json:"name,omitempty"`
	ProductSKU                     string          `json:"productSku,omitempty"`
	VariantSKU                     string          `json:"variantSku,omitempty"`
	ProductID                      string          `json:"productId,omitempty"`
	VariantID                      string          `json:"variantId,omitempty"`
	VariantName                    string          `json:"variantName,omitempty"`
	Message                        string          `json:"message,omitempty"`
	CustomOptions                  []CustomOption  `json:"customOptions,omitempty"`
	OriginalPrice                  *Price          `json:"originalPrice,omitempty"`
	Price                          Price           `json:"price"`
	PriceInclTax                   *Price          `json:"priceInclTax,omitempty"`
	TaxValue                       *Price          `json:"taxValue,omitempty"`
	Quantity                       int             `json:"quantity"`
	SuccessfullyFulfilledQuantity  *int            `json:"successfully_fulfilled_quantity,omitempty"`
	Title                          string          `json:"title,omitempty"`
	LineValue                      *Price          `json:"lineValue,omitempty"`
	LineValueInclTax               *Price          `json:"lineValueInclTax,omitempty"`
	LineTaxValue                   *Price          `json:"lineTaxValue,omitempty"`
	OriginalPriceInclTax           *Price          `json:"originalPriceInclTax,omitempty"`
	TaxRate                        *float64        `json:"taxRate,omitempty"`
	Variant                        json.RawMessage `json:"variant,omitempty"`
}

// Order is a shop order or cart.
type Order struct {
	ID                   string          `json:"id,omitempty"`
	AgentID              string          `json:"agentId,omitempty"`
	SessionID            string          `json:"sessionId,omitempty"`
	BillingAddress       *Address        `json:"billingAddress,omitempty"`
	ShippingAddress      *Address        `json:"shippingAddress,omitempty"`
	Attributes           map[string]any  `json:"attributes,omitempty"`
	Notes                []Note          `json:"notes,omitempty"`
	StatusChanges        []StatusChange  `json:"statusChanges,omitempty"`
	Status               string          `json:"status,omitempty"`
	Email                string          `json:"email,omitempty"`
	Customer             *Customer       `json:"customer,omitempty"`
	Subtotal             *Price          `json:"subtotal,omitempty"`
	SubTotalInclTax      *Price          `json:"subTotalInclTax,omitempty"`
	SubtotalTaxValue     *Price          `json:"subtotalTaxValue,omitempty"`
	Total                *Price          `json:"total,omitempty"`
	TotalInclTax         *Price          `json:"totalInclTax,omitempty"`
	ShippingMethod       string          `json:"shippingMethod,omitempty"`
	ShippingPrice        *Price          `json:"shippingPrice,omitempty"`
	ShippingPriceInclTax *Price          `json:"shippingPriceInclTax,omitempty"`
	ShippingPriceTaxRate *float64        `json:"shippingPriceTaxRate,omitempty"`
	Items                []OrderItem     `json:"items,omitempty"`
	CreatedAt            string          `json:"createdAt,omitempty"`
	UpdatedAt            string          `json:"updatedAt,omitempty"`
}

// Audit is an audit log entry.
type Audit struct {
	ID             *int64 `json:"id,omitempty"`
	IP             string `json:"ip,omitempty"`
	UA             string `json:"ua,omitempty"`
	KeyLocatorHash string `json:"keyLocatorHash,omitempty"`
	DatabaseIDHash string `json:"databaseIdHash,omitempty"`
	RecordLocator  string `json:"recordLocator,omitempty"`
	Diff           string `json:"diff,omitempty"`
	EventName      string `json:"eventName,omitempty"`
	CreatedAt      string `json:"createdAt,omitempty"`
}

// Stat is one usage record.
type Stat struct {
	ID               *int64 `json:"id,omitempty"`
	EventName        string `json:"eventName"`
	PromptTokens     int64  `json:"promptTokens"`
	CompletionTokens int64  `json:"completionTokens"`
	FinishReasons    string `json:"finishReasons,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
	CreatedMonth     *int   `json:"createdMonth,omitempty"`
	CreatedDay       *int   `json:"createdDay,omitempty"`
	CreatedYear      *int   `json:"createdYear,omitempty"`
	CreatedHour      *int   `json:"createdHour,omitempty"`
	Counter          *int64 `json:"counter,omitempty"`
}

// UsageSummary aggregates token usage over a period.
type UsageSummary struct {
	OverallTokens    int64   `json:"overallTokens"`
	PromptTokens     int64   `json:"promptTokens"`
	CompletionTokens int64   `json:"completionTokens"`
	OverallUSD       float64 `json:"overalUSD"` // sic, server field name
	Requests         int64   `json:"requests"`
}

// AggregatedStats is the usage summary for this month, last month and today.
type AggregatedStats struct {
	ThisMonth UsageSummary `json:"thisMonth"`
	LastMonth UsageSummary `json:"lastMonth"`
	Today     UsageSummary `json:"today"`
}

// Response is the envelope most write endpoints answer with.
type Response struct {
	Message string          `json:"message,omitempty"`
	Status  int             `json:"status,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeData unmarshals the Data field into v.
func (r *Response) DecodeData(v any) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// VectorStoreEntry is one record of a memory store.
type VectorStoreEntry struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Embedding []float64      `json:"embedding"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt string         `json:"createdAt,omitempty"`
	UpdatedAt string         `json:"updatedAt,omitempty"`
}

// VectorStoreMetadata describes a memory store.
type VectorStoreMetadata struct {
	File         string `json:"file"`
	DisplayName  string `json:"displayName"`
	ItemCount    int    `json:"itemCount"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
	LastAccessed string `json:"lastAccessed,omitempty"`
}

// PaginatedVectorStores is a page of memory stores.
type PaginatedVectorStores struct {
	Files   []VectorStoreMetadata `json:"files"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
	HasMore bool                  `json:"hasMore"`
	Total   int                   `json:"total"`
}

// ScoredVectorStoreEntry is a record with its similarity to a search query.
type ScoredVectorStoreEntry struct {
	VectorStoreEntry
	Similarity *float64 `json:"similarity,omitempty"`
}

// PaginatedRecords is a page of memory records.
type PaginatedRecords struct {
	Rows              []ScoredVectorStoreEntry `json:"rows"`
	Total             int                      `json:"total"`
	VectorSearchQuery string                   `json:"vectorSearchQuery,omitempty"`
}
