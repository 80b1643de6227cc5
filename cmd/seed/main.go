package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	"github.com/sngm3741/halal-food-club/api/internal/config"
	publicapp "github.com/sngm3741/halal-food-club/api/internal/public/application"
	"github.com/sngm3741/halal-food-club/api/internal/server"
)

type seedOptions struct {
	envName    string
	reviews    int
	randomSeed int64
}

type sampleRestaurant struct {
	name     string
	cuisines []string
	address  string
	postcode string
	lat, lng float64
	phone    string
	menu     []adminapp.MenuSectionCommand
}

var samples = []sampleRestaurant{
	{
		name: "Al-Madina", cuisines: []string{"Turkish", "Grill"},
		address: "571 Stratford Rd, Sparkhill, Birmingham", postcode: "B11 4LS",
		lat: 52.4625, lng: -1.8848, phone: "0121 772 0000",
		menu: []adminapp.MenuSectionCommand{{Section: "Grills", Items: []adminapp.MenuItemCommand{
			{Name: "Adana Kebab", Price: 12.5}, {Name: "Lamb Chops", Price: 15},
		}}},
	},
	{
		name: "Shababs", cuisines: []string{"Pakistani", "Balti"},
		address: "274 Ladypool Rd, Birmingham", postcode: "B12 8JU",
		lat: 52.4560, lng: -1.8790, phone: "0121 440 3264",
		menu: []adminapp.MenuSectionCommand{{Section: "Balti", Items: []adminapp.MenuItemCommand{
			{Name: "Lamb Balti", Price: 10.95}, {Name: "Chicken Tikka Balti", Price: 9.95},
		}}},
	},
	{
		name: "Lahore Kebab House", cuisines: []string{"Pakistani", "Grill"},
		address: "2-10 Umberston St, London", postcode: "E1 1PY",
		lat: 51.5145, lng: -0.0644, phone: "020 7481 9737",
	},
	{
		name: "Mowgli Corner", cuisines: []string{"Indian", "Street Food"},
		address: "14 Bold St, Liverpool", postcode: "L1 4DS",
		lat: 53.4040, lng: -2.9790, phone: "0151 708 9356",
	},
	{
		name: "Yaffa", cuisines: []string{"Lebanese", "Middle Eastern"},
		address: "54 Wilmslow Rd, Manchester", postcode: "M14 5TQ",
		lat: 53.4520, lng: -2.2240, phone: "0161 224 0000",
	},
	{
		name: "Damascu Bite", cuisines: []string{"Syrian", "Middle Eastern"},
		address: "40 Brick Ln, London", postcode: "E1 6RF",
		lat: 51.5200, lng: -0.0716, phone: "020 7247 0000",
	},
}

var reviewTexts = []string{
	"Generous portions and friendly staff.",
	"Mixed grill was excellent, will be back.",
	"Good food but a long wait on Friday night.",
	"Clearly displayed halal certificate, great for families.",
	"",
}

func main() {
	opts := parseFlags()
	loadEnvFiles(opts.envName)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.StoreBackend == config.BackendMemory {
		log.Printf("WARN: STORE_BACKEND=memory, seeded data disappears when this process exits")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	app, err := server.New(ctx, cfg)
	if err != nil {
		log.Fatalf("backend initialisation failed: %v", err)
	}
	defer app.Close(context.Background())

	rng := rand.New(rand.NewSource(opts.randomSeed))
	published, reviewed := 0, 0
	for i, sample := range samples {
		restaurantID, err := publish(ctx, app.Submissions(), app.Lifecycle(), sample, i)
		if err != nil {
			log.Fatalf("seeding %s failed: %v", sample.name, err)
		}
		published++

		n, err := addReviews(ctx, app.ReviewCommands(), restaurantID, rng, opts.reviews)
		if err != nil {
			log.Fatalf("reviews for %s failed: %v", sample.name, err)
		}
		reviewed += n
	}

	log.Printf("seed complete: restaurants=%d reviews=%d backend=%s (env=%s)", published, reviewed, cfg.StoreBackend, opts.envName)
}

// publish drives a sample through submit, payment and approval so the
// restaurant is created the same way production listings are.
func publish(ctx context.Context, submissions adminapp.SubmissionService, lifecycle adminapp.LifecycleService, sample sampleRestaurant, index int) (string, error) {
	sub, err := submissions.Submit(ctx, adminapp.SubmitCommand{
		OwnerUID:       fmt.Sprintf("seed-owner-%d", index+1),
		Name:           sample.name,
		Cuisines:       sample.cuisines,
		Address:        sample.address,
		Postcode:       sample.postcode,
		Lat:            sample.lat,
		Lng:            sample.lng,
		Phone:          sample.phone,
		HalalCertified: index%2 == 0,
		HygieneRating:  "5",
		Menu:           sample.menu,
		WhyUs:          "Seeded sample listing.",
	})
	if err != nil {
		return "", fmt.Errorf("submit: %w", err)
	}
	if _, err := lifecycle.RecordPayment(ctx, sub.ID, "seed-"+sub.ID); err != nil {
		return "", fmt.Errorf("record payment: %w", err)
	}
	restaurant, err := lifecycle.Approve(ctx, sub.ID)
	if err != nil {
		return "", fmt.Errorf("approve: %w", err)
	}
	log.Printf("published %s submission=%s restaurant=%s", sample.name, sub.ID, restaurant.ID)
	return restaurant.ID, nil
}

func addReviews(ctx context.Context, reviews publicapp.ReviewCommandService, restaurantID string, rng *rand.Rand, max int) (int, error) {
	if max <= 0 {
		return 0, nil
	}
	count := 1 + rng.Intn(max)
	for i := 0; i < count; i++ {
		_, _, err := reviews.Submit(ctx, publicapp.SubmitReviewCommand{
			RestaurantID: restaurantID,
			UID:          fmt.Sprintf("seed-reviewer-%d", rng.Intn(1000)),
			Rating:       3 + rng.Intn(3),
			Text:         reviewTexts[rng.Intn(len(reviewTexts))],
		})
		if err != nil {
			return i, err
		}
	}
	return count, nil
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envName, "env", "local", "env file name under ../env (e.g. local, staging)")
	flag.IntVar(&opts.reviews, "reviews", 5, "maximum reviews generated per restaurant")
	flag.Int64Var(&opts.randomSeed, "seed", time.Now().UnixNano(), "random seed for reproducible reviews")
	flag.Parse()

	if opts.reviews < 0 {
		opts.reviews = 0
	}
	return opts
}

// loadEnvFiles loads ../env/shared.env and ../env/<name>.env when present.
// Variables already set in the environment win.
func loadEnvFiles(envName string) {
	base := filepath.Clean(filepath.Join("..", "env"))
	for _, file := range []string{
		filepath.Join(base, "shared.env"),
		filepath.Join(base, envName+".env"),
	} {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("loading %s failed: %v", file, err)
		}
	}
}
