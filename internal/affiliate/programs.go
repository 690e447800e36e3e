package affiliate

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// Credentials holds the affiliate network keys. Keys live in the
// environment or a .env file, never in source.
type Credentials struct {
	// SovrnAPIKey authorizes the Sovrn Commerce redirect network.
	SovrnAPIKey string
	// StockXPartnerID is the Impact partner id for StockX links.
	StockXPartnerID string
}

// LoadCredentials reads affiliate keys from the environment. When a .env
// file exists at envFile (default ".env") it is loaded first.
func LoadCredentials(envFile string) Credentials {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Warning: Error loading %s file: %v", envFile, err)
		}
	}
	partnerID := os.Getenv("IMPACT_PARTNER_ID")
	if partnerID == "" {
		// Older deployments exported the merchant-specific name.
		partnerID = os.Getenv("STOCKX_PARTNER_ID")
	}
	return Credentials{
		SovrnAPIKey:     os.Getenv("SOVRN_API_KEY"),
		StockXPartnerID: partnerID,
	}
}

// Program is one affiliate outlet. SearchURL is a fully-keyed prefix; the
// escaped search term is appended to it.
type Program struct {
	ID         string
	Name       string
	SearchURL  string
	Commission float64
	Priority   int
	Network    string
}

// Programs returns the outlets usable with the given credentials, best
// commission first. Outlets whose network has no key are skipped, so a
// half-configured deployment still serves the links it can.
func Programs(creds Credentials) []Program {
	var programs []Program

	if creds.StockXPartnerID != "" {
		programs = append(programs, Program{
			ID:   "stockx",
			Name: "StockX",
			SearchURL: fmt.Sprintf(
				"https://stockx.pxf.io/c/%s/1192164/9498?subId1=courtside&u=https://stockx.com/search?s=",
				creds.StockXPartnerID),
			Commission: 0.08,
			Priority:   1,
			Network:    "impact",
		})
	}

	if creds.SovrnAPIKey != "" {
		programs = append(programs,
			Program{
				ID:         "goat",
				Name:       "GOAT",
				SearchURL:  sovrnRedirect(creds.SovrnAPIKey, "https://www.goat.com/search?query="),
				Commission: 0.07,
				Priority:   2,
				Network:    "sovrn",
			},
			Program{
				ID:         "footlocker",
				Name:       "Foot Locker",
				SearchURL:  sovrnRedirect(creds.SovrnAPIKey, "https://www.footlocker.com/search?query="),
				Commission: 0.06,
				Priority:   3,
				Network:    "sovrn",
			},
			Program{
				ID:         "finishline",
				Name:       "Finish Line",
				SearchURL:  sovrnRedirect(creds.SovrnAPIKey, "https://www.finishline.com/store/search?query="),
				Commission: 0.06,
				Priority:   4,
				Network:    "sovrn",
			},
			Program{
				ID:         "dickssporting",
				Name:       "Dick's Sporting Goods",
				SearchURL:  sovrnRedirect(creds.SovrnAPIKey, "https://www.dickssportinggoods.com/search/SearchDisplay?searchTerm="),
				Commission: 0.05,
				Priority:   5,
				Network:    "sovrn",
			},
		)
	}

	sort.Slice(programs, func(i, j int) bool {
		return programs[i].Priority < programs[j].Priority
	})
	return programs
}

// sovrnRedirect wraps a merchant search URL in a keyed Sovrn redirect. The
// search term still goes on the end of the merchant URL.
func sovrnRedirect(key, target string) string {
	return fmt.Sprintf("https://redirect.viglink.com?key=%s&u=%s", key, target)
}
