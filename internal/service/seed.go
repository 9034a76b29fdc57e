package service

import "encoding/json"

// SeedOrders go through validation like any other input.
var SeedOrders = []map[string]any{
	{"customer_name": "Kamrul Islam", "item_name": "MSI Gaming Laptop", "quantity": 1, "total_price": json.Number("1299.99")},
	{"customer_name": "Alif", "item_name": "Ajazz Ak870 Pro Keybaord", "quantity": 2, "total_price": json.Number("49.98")},
	{"customer_name": "Fatema Tuz Johra", "item_name": "Dareu Ak950Pro Gaming Mouse", "quantity": 1, "total_price": json.Number("59.99")},
	{"customer_name": "Riha", "item_name": "Walton Monitor 27 inche", "quantity": 2, "total_price": json.Number("599.98")},
	{"customer_name": "Mehedi HasaN", "item_name": "USB C Cable", "quantity": 3, "total_price": json.Number("29.97")},
}
