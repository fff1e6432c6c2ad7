// Package synthetic generates labeled marketplace listings for training and
// regression tests. Normal listings follow per-category templates; a
// configurable fraction gets suspicious signals injected (spam titles,
// contact details, price undercutting, keyword stuffing) together with the
// reason labels.
package synthetic

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/souqrisk/souqrisk/internal/model"
)

// Categories is the fixed category set of the synthetic marketplace.
var Categories = []string{
	"Mobiles", "Electronics", "Cars", "Apartments", "Furniture",
	"Jobs", "Services", "Bikes", "Laptops", "Fashion",
}

var locations = []string{
	"Dubai Marina", "JLT", "Business Bay", "Deira", "Bur Dubai",
	"Al Barsha", "Downtown Dubai", "Sharjah", "Abu Dhabi", "Ajman",
}

var spamWords = []string{
	"URGENT SALE", "CHEAP", "LIMITED OFFER", "100% ORIGINAL",
	"GUARANTEED", "BEST PRICE", "FREE DELIVERY", "WHATSAPP",
	"CALL NOW", "NO SCAM", "GENUINE", "PROMOTION",
}

var emojis = []string{"\U0001F525", "\U0001F4AF", "✅", "\U0001F4DE", "⚡", "\U0001F631", "\U0001F6A8", "\U0001F389"}

var brands = map[string][]string{
	"Mobiles":     {"Apple", "Samsung", "Xiaomi", "OnePlus", "Google"},
	"Cars":        {"Toyota", "Nissan", "BMW", "Mercedes", "Honda", "Kia"},
	"Laptops":     {"Dell", "HP", "Lenovo", "Asus"},
	"Electronics": {"Sony", "LG", "Samsung", "JBL", "Bose"},
	"Bikes":       {"Yamaha", "Honda", "Suzuki", "Kawasaki"},
	"Fashion":     {"Nike", "Adidas", "Zara"},
	"Furniture":   {"Ikea", "Home Centre", "Pan Emirates"},
}

var models = map[string][]string{
	"Apple":   {"iPhone 13", "iPhone 14", "iPhone 15 Pro", "iPhone 12"},
	"Samsung": {"S22", "S23 Ultra", "A54", "Note 20"},
	"Toyota":  {"Corolla", "Camry", "Yaris", "Land Cruiser"},
	"Nissan":  {"Altima", "Patrol", "Sunny", "X-Trail"},
	"BMW":     {"X5", "3 Series", "5 Series"},
	"Dell":    {"Inspiron", "XPS 13", "Latitude"},
	"HP":      {"Pavilion", "Envy", "EliteBook"},
	"Lenovo":  {"ThinkPad", "IdeaPad"},
	"Asus":    {"ROG", "Vivobook"},
}

var conditions = []string{"New", "Like New", "Used", "Good condition", "Fair"}

var furnitureItems = []string{
	"Sofa set", "Dining table", "Office chair", "Bed frame",
	"Wardrobe", "Coffee table", "TV unit",
}

// Rough realistic AED ranges per category. Jobs carry no price.
var priceRanges = map[string][2]int{
	"Mobiles":     {500, 4500},
	"Electronics": {200, 5000},
	"Cars":        {8000, 180000},
	"Apartments":  {2500, 18000},
	"Furniture":   {100, 3500},
	"Jobs":        {0, 0},
	"Services":    {50, 2000},
	"Bikes":       {300, 20000},
	"Laptops":     {700, 7000},
	"Fashion":     {30, 1500},
}

// Categories where a too-good-to-be-true price is a plausible scam signal.
var undercutCategories = map[string]bool{
	"Mobiles": true, "Cars": true, "Laptops": true,
	"Electronics": true, "Apartments": true,
}

// Generator produces a deterministic stream of synthetic listings.
type Generator struct {
	rng    *rand.Rand
	faker  *gofakeit.Faker
	nextID int
}

// NewGenerator seeds a generator; the same seed reproduces the same stream.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:    rand.New(rand.NewSource(seed)),
		faker:  gofakeit.New(uint64(seed)),
		nextID: 1000,
	}
}

func (g *Generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *Generator) phone() string {
	return fmt.Sprintf("+9715%d%07d", g.rng.Intn(10), 1000000+g.rng.Intn(9000000))
}

func (g *Generator) email() string {
	domain := g.pick([]string{"gmail.com", "yahoo.com", "outlook.com"})
	return strings.ToLower(g.faker.Username()) + "@" + domain
}

func (g *Generator) price(category string) float64 {
	r, ok := priceRanges[category]
	if !ok {
		r = [2]int{100, 5000}
	}
	if r[0] == 0 && r[1] == 0 {
		return 0
	}
	return float64(r[0] + g.rng.Intn(r[1]-r[0]+1))
}

// Listing produces the next listing, suspicious or normal.
func (g *Generator) Listing(suspicious bool) model.Listing {
	l := g.normal()
	if suspicious {
		g.inject(&l)
	}
	return l
}

func (g *Generator) normal() model.Listing {
	id := g.nextID
	g.nextID++

	category := g.pick(Categories)
	location := g.pick(locations)
	condition := g.pick(conditions)
	brand := "Generic"
	if bs, ok := brands[category]; ok {
		brand = g.pick(bs)
	}
	mdl := "Model X"
	if ms, ok := models[brand]; ok {
		mdl = g.pick(ms)
	}

	var title, desc string
	switch category {
	case "Cars":
		year := 2008 + g.rng.Intn(17)
		mileage := 15000 + g.rng.Intn(235001)
		title = fmt.Sprintf("%d %s %s %dkm - %s", year, brand, mdl, mileage, condition)
		desc = fmt.Sprintf("%s. Well maintained. Service history available. Located in %s.", condition, location)
	case "Apartments":
		beds := 1 + g.rng.Intn(4)
		furnishing := g.pick([]string{"Furnished", "Semi-furnished", "Unfurnished"})
		title = fmt.Sprintf("%dBHK in %s | %s", beds, location, furnishing)
		desc = fmt.Sprintf("%d bedroom apartment in %s. %s. Ready to move. Family building.", beds, location, furnishing)
	case "Furniture":
		item := g.pick(furnitureItems)
		title = fmt.Sprintf("%s - %s", item, condition)
		desc = fmt.Sprintf("%s in %s. Pickup from %s.", item, condition, location)
	case "Laptops":
		ram := g.pick([]string{"8", "16", "32"})
		storage := g.pick([]string{"256", "512", "1024"})
		title = fmt.Sprintf("%s %s %sGB RAM %sGB SSD - %s", brand, mdl, ram, storage, condition)
		desc = fmt.Sprintf("%s. Battery good. Includes charger. Available in %s.", condition, location)
	default:
		storage := g.pick([]string{"64", "128", "256", "512"})
		title = fmt.Sprintf("%s %s %sGB %s", brand, mdl, storage, condition)
		desc = fmt.Sprintf("%s. No issues. Can meet in %s.", condition, location)
	}

	label := 0
	return model.Listing{
		ListingID:     strconv.Itoa(id),
		Category:      category,
		Location:      location,
		SellerType:    model.SellerType(g.pick([]string{"individual", "business"})),
		PostedDaysAgo: g.rng.Intn(31),
		Title:         title,
		Description:   desc,
		PriceAED:      g.price(category),
		IsSuspicious:  &label,
	}
}

func (g *Generator) inject(l *model.Listing) {
	reasons := make(map[string]bool)

	if g.rng.Float64() < 0.6 {
		l.Title = strings.ToUpper(fmt.Sprintf("%s %s %s", g.pick(spamWords), g.pick(emojis), l.Title))
		reasons["spam_title_caps"] = true
	}
	if g.rng.Float64() < 0.5 {
		l.Description += " Contact WhatsApp " + g.phone()
		reasons["phone_in_description"] = true
	}
	if g.rng.Float64() < 0.25 {
		l.Description += " Email: " + g.email()
		reasons["email_in_description"] = true
	}
	if undercutCategories[l.Category] && g.rng.Float64() < 0.55 {
		cut := 0.05 + 0.20*g.rng.Float64()
		l.PriceAED = float64(int(l.PriceAED * cut))
		if l.PriceAED < 1 {
			l.PriceAED = 1
		}
		reasons["price_too_low"] = true
	}
	if g.rng.Float64() < 0.35 {
		word := g.pick([]string{"original", "cheap", "urgent", "offer", "sale"})
		repeats := 5 + g.rng.Intn(8)
		l.Description += " " + strings.TrimSpace(strings.Repeat(word+" ", repeats))
		reasons["repeated_words"] = true
	}
	if g.rng.Float64() < 0.3 {
		l.PostedDaysAgo = g.rng.Intn(2)
		l.SellerType = model.SellerIndividual
		reasons["new_listing_fast_post"] = true
	}

	// Every suspicious listing carries at least one textual signal.
	if len(reasons) == 0 {
		l.Title = strings.ToUpper(g.pick(spamWords) + " " + l.Title)
		reasons["spam_title_caps"] = true
	}

	sorted := make([]string, 0, len(reasons))
	for r := range reasons {
		sorted = append(sorted, r)
	}
	sort.Strings(sorted)

	label := 1
	l.IsSuspicious = &label
	l.SuspiciousReason = strings.Join(sorted, "|")
}

// Dataset produces n listings with the given suspicious ratio, shuffled.
func (g *Generator) Dataset(n int, suspiciousRatio float64) []model.Listing {
	nSuspicious := int(float64(n) * suspiciousRatio)

	listings := make([]model.Listing, 0, n)
	for i := 0; i < n-nSuspicious; i++ {
		listings = append(listings, g.Listing(false))
	}
	for i := 0; i < nSuspicious; i++ {
		listings = append(listings, g.Listing(true))
	}

	g.rng.Shuffle(len(listings), func(i, j int) {
		listings[i], listings[j] = listings[j], listings[i]
	})
	return listings
}
