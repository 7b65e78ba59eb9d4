package domain

// Metrics holds the 0-100 sustainability sub-scores of a product
type Metrics struct {
	Materials       int `json:"materials"`
	CarbonFootprint int `json:"carbonFootprint"`
	Recyclability   int `json:"recyclability"`
}

// Impact holds free-text environmental impact figures
type Impact struct {
	CO2       string `json:"co2"`
	Water     string `json:"water"`
	Packaging string `json:"packaging"`
	Land      string `json:"land"`
}

// Certification is a label shown on the product page, Color is a UI tag
type Certification struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Product represents a scannable retail product with its EcoScore
type Product struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name" gorm:"not null"`
	Brand            string          `json:"brand" gorm:"not null"`
	Category         string          `json:"category" gorm:"not null"`
	Barcode          string          `json:"barcode" gorm:"index;not null"`
	EcoScore         string          `json:"ecoScore" gorm:"not null"`
	Metrics          Metrics         `json:"metrics" gorm:"serializer:json"`
	Impact           Impact          `json:"impact" gorm:"serializer:json"`
	Ingredients      string          `json:"ingredients"`
	Certifications   []Certification `json:"certifications" gorm:"serializer:json"`
	Production       string          `json:"production"`
	PackagingDetails string          `json:"packaging_details" gorm:"column:packaging_details"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Alternative is a more sustainable product suggested for another product
type Alternative struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	ProductID uint   `json:"-" gorm:"index;not null"`
	Name      string `json:"name" gorm:"not null"`
	EcoScore  string `json:"ecoScore" gorm:"not null"`
	Feature   string `json:"feature"`
}

// TableName specifies the table name
func (Alternative) TableName() string {
	return "product_alternatives"
}
