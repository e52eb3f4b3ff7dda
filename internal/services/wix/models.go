package wix

// Product is a product record as returned by the Wix Stores API.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Media *Media `json:"media,omitempty"`
	Price *Price `json:"priceData,omitempty"`
	Stock *Stock `json:"stock,omitempty"`
}

type Media struct {
	MainMedia *MediaItem  `json:"mainMedia,omitempty"`
	Items     []MediaItem `json:"items,omitempty"`
}

type MediaItem struct {
	Image *Image `json:"image,omitempty"`
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"altText,omitempty"`
}

type Price struct {
	Price           string `json:"price"`
	Currency        string `json:"currency"`
	DiscountedPrice string `json:"discountedPrice,omitempty"`
}

type Stock struct {
	TrackInventory bool `json:"trackInventory"`
	InStock        bool `json:"inStock"`
	Quantity       int  `json:"quantity"`
}

// ImageURL returns the primary hosted image URL, or "" when the product
// carries no media.
func (p *Product) ImageURL() string {
	if p.Media == nil {
		return ""
	}
	if p.Media.MainMedia != nil && p.Media.MainMedia.Image != nil {
		return p.Media.MainMedia.Image.URL
	}
	if len(p.Media.Items) > 0 && p.Media.Items[0].Image != nil {
		return p.Media.Items[0].Image.URL
	}
	return ""
}

// CreateProductRequest is the payload for the Wix product creation call.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProductType string `json:"productType"`
	Price       Price  `json:"priceData"`
	Stock       Stock  `json:"stock"`
	Visible     bool   `json:"visible"`
	Brand       string `json:"brand,omitempty"`
}

type productsQueryRequest struct {
	Query struct {
		Paging struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset,omitempty"`
		} `json:"paging"`
	} `json:"query"`
}

// ProductsQueryResponse is a page of the Wix product catalog.
type ProductsQueryResponse struct {
	Products []Product `json:"products"`
	Metadata struct {
		Count int `json:"count"`
		Total int `json:"totalResults"`
	} `json:"metadata"`
}

// CheckoutLineItem references a Wix catalog item to be purchased.
type CheckoutLineItem struct {
	ExternalID string
	Quantity   int
	Options    map[string]string
}

type checkoutRequest struct {
	LineItems    []checkoutRequestLine `json:"lineItems"`
	ChannelType  string                `json:"channelType"`
	EcomSettings struct {
		ReturnURL string `json:"returnUrl"`
	} `json:"ecomSettings"`
}

type checkoutRequestLine struct {
	CatalogReference catalogReference `json:"catalogReference"`
	Quantity         int              `json:"quantity"`
}

type catalogReference struct {
	CatalogItemID string            `json:"catalogItemId"`
	AppID         string            `json:"appId"`
	Options       map[string]string `json:"options"`
}

type checkoutResponse struct {
	Checkout struct {
		ID string `json:"id"`
	} `json:"checkout"`
}

type checkoutURLResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}
