package models

// SalesSummary сводные показатели магазина без ограничения по времени.
type SalesSummary struct {
	Users    int     `json:"users"`
	Products int     `json:"products"`
	Sales    int     `json:"total_sales"`
	Revenue  float64 `json:"total_revenue"`
}

// DailySales продажи за один календарный день. Дни без заказов
// представлены нулевыми значениями, а не отсутствием записи.
type DailySales struct {
	Date    string  `json:"date"` // формат 2006-01-02
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}
