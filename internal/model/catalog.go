package model

// Product is a row of the catalog's products table.
type Product struct {
	ProductID   string  `gorm:"type:varchar(50);primaryKey" json:"product_id"`
	ProductName string  `gorm:"type:varchar(255)" json:"product_name"`
	Category    string  `gorm:"type:varchar(100);index" json:"category"`
	Price       float64 `json:"price"`
}

func (Product) TableName() string {
	return "products"
}

// Supplier is a row of the catalog's suppliers table.
type Supplier struct {
	SupplierID   string `gorm:"type:varchar(50);primaryKey" json:"supplier_id"`
	SupplierName string `gorm:"type:varchar(255)" json:"supplier_name"`
	ContactEmail string `gorm:"type:varchar(255)" json:"contact_email"`
	LeadTimeDays int    `json:"lead_time_days"`
}

func (Supplier) TableName() string {
	return "suppliers"
}

// ReplenishmentRule links a product to the supplier that restocks it.
type ReplenishmentRule struct {
	ProductID        string `gorm:"type:varchar(50);primaryKey" json:"product_id"`
	SupplierID       string `gorm:"type:varchar(50);primaryKey" json:"supplier_id"`
	MOQ              int    `gorm:"column:moq" json:"moq"` // minimum order quantity
	SafetyStockLevel int    `json:"safety_stock_level"`
}

func (ReplenishmentRule) TableName() string {
	return "replenishment_rules"
}

// CategoryCount is one group of the products-by-category aggregate.
type CategoryCount struct {
	Category     string `json:"category"`
	ProductCount int64  `json:"product_count"`
}

// ProductSupplier is one row of the products x suppliers join.
type ProductSupplier struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Category     string `json:"category"`
	SupplierName string `json:"supplier_name"`
	LeadTimeDays int    `json:"lead_time_days"`
}

// CategoryProfile summarises replenishment settings per category.
type CategoryProfile struct {
	Category       string  `json:"category"`
	ProductCount   int64   `json:"product_count"`
	AvgSafetyStock float64 `json:"avg_safety_stock"`
	AvgMOQ         float64 `gorm:"column:avg_moq" json:"avg_moq"`
}
