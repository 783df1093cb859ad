package catalog

// SeedProducts returns the fixed demo catalog loaded at startup.
func SeedProducts() []Product {
	return []Product{
		{
			ID:            1,
			Title:         "Apple iPhone 15 Pro Max (256 GB) - Natural Titanium",
			Image:         "https://via.placeholder.com/250x250/ffffff/2874f0?text=iPhone+15",
			Price:         134900,
			OriginalPrice: 149900,
			Rating:        4.5,
			RatingCount:   12450,
			Category:      "Mobiles",
			Description:   "Latest iPhone with A17 Pro chip and titanium design",
			InStock:       true,
			StockCount:    50,
		},
		{
			ID:            2,
			Title:         "Samsung Galaxy S24 Ultra (512 GB) - Titanium Black",
			Image:         "https://via.placeholder.com/250x250/ffffff/2874f0?text=Galaxy+S24",
			Price:         124999,
			OriginalPrice: 139999,
			Rating:        4.6,
			RatingCount:   8920,
			Category:      "Mobiles",
			Description:   "Premium Android flagship with S Pen",
			InStock:       true,
			StockCount:    30,
		},
		{
			ID:            3,
			Title:         "Sony WH-1000XM5 Wireless Headphones with Noise Cancellation",
			Image:         "https://via.placeholder.com/250x250/ffffff/2874f0?text=Sony+Headphones",
			Price:         27990,
			OriginalPrice: 34990,
			Rating:        4.7,
			RatingCount:   15630,
			Category:      "Electronics",
			Description:   "Premium noise-cancelling wireless headphones",
			InStock:       true,
			StockCount:    100,
		},
		{
			ID:            4,
			Title:         "MacBook Pro 16-inch M3 Pro (1TB SSD, 36GB RAM)",
			Image:         "https://via.placeholder.com/250x250/ffffff/2874f0?text=MacBook+Pro",
			Price:         289900,
			OriginalPrice: 319900,
			Rating:        4.8,
			RatingCount:   5230,
			Category:      "Electronics",
			Description:   "Powerful laptop for professionals and creators",
			InStock:       true,
			StockCount:    25,
		},
		{
			ID:            5,
			Title:         "Samsung 55-inch QLED 4K Smart TV (QA55Q80C)",
			Image:         "https://via.placeholder.com/250x250/ffffff/2874f0?text=Samsung+TV",
			Price:         89990,
			OriginalPrice: 119990,
			Rating:        4.4,
			RatingCount:   7820,
			Category:      "Appliances",
			Description:   "Premium QLED TV with 4K resolution",
			InStock:       true,
			StockCount:    40,
		},
		{
			ID:            6,
			Title:         "Dell XPS 15 Laptop (Intel i7, 16GB RAM, 512GB SSD)",
			Image:         "https://via.placeholder.com/250x250/ffffff/2874f0?text=Dell+XPS",
			Price:         149990,
			OriginalPrice: 179990,
			Rating:        4.5,
			RatingCount:   3450,
			Category:      "Electronics",
			Description:   "High-performance laptop for business and creative work",
			InStock:       true,
			StockCount:    35,
		},
		{
			ID:            7,
			Title:         "AirPods Pro (2nd Generation) with MagSafe Case",
			Image:         "https://via.placeholder.com/250x250/ffffff/2874f0?text=AirPods+Pro",
			Price:         24900,
			OriginalPrice: 29900,
			Rating:        4.6,
			RatingCount:   18200,
			Category:      "Electronics",
			Description:   "Premium wireless earbuds with active noise cancellation",
			InStock:       true,
			StockCount:    150,
		},
		{
			ID:            8,
			Title:         "Canon EOS R5 Mirrorless Camera (45MP, 4K Video)",
			Image:         "https://via.placeholder.com/250x250/ffffff/2874f0?text=Canon+EOS",
			Price:         389990,
			OriginalPrice: 449990,
			Rating:        4.7,
			RatingCount:   1250,
			Category:      "Electronics",
			Description:   "Professional mirrorless camera for photography and videography",
			InStock:       true,
			StockCount:    15,
		},
	}
}
