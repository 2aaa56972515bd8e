package catalog

// Product photos per article type; anything unmapped gets defaultImage.
var articleImages = map[string]string{
	"Shirts":        "https://images.unsplash.com/photo-1562157873-818bc0726f68",
	"Jeans":         "https://images.unsplash.com/photo-1655362258669-e230aacbd21b",
	"T-shirts":      "https://images.pexels.com/photos/322207/pexels-photo-322207.jpeg",
	"Tshirts":       "https://images.pexels.com/photos/322207/pexels-photo-322207.jpeg",
	"Casual Shirts": "https://images.pexels.com/photos/5217841/pexels-photo-5217841.jpeg",
	"Dresses":       "https://images.pexels.com/photos/985635/pexels-photo-985635.jpeg",
	"Track Pants":   "https://images.unsplash.com/photo-1655362258669-e230aacbd21b",
	"Casual Shoes":  "https://images.unsplash.com/photo-1560769629-975ec94e6a86",
	"Handbags":      "https://images.unsplash.com/photo-1492707892479-7bc8d5a4ee93",
	"Watches":       "https://images.unsplash.com/photo-1492707892479-7bc8d5a4ee93",
	"Heels":         "https://images.pexels.com/photos/32552778/pexels-photo-32552778.jpeg",
	"Leather Belts": "https://images.unsplash.com/photo-1705873176985-85bb5788ef3a",
	"Sneakers":      "https://images.unsplash.com/photo-1560769629-975ec94e6a86",
	"Blazers":       "https://images.pexels.com/photos/5217841/pexels-photo-5217841.jpeg",
}

const defaultImage = "https://images.pexels.com/photos/322207/pexels-photo-322207.jpeg"

// ImageFor returns a representative image URL for an article type.
func ImageFor(articleType string) string {
	if u, ok := articleImages[articleType]; ok {
		return u
	}
	return defaultImage
}
