// advisortester drives the advisor end to end from the command line. It is
// a manual smoke test for credentials, model configuration and prompts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rahhal-app/rahhal/backend/internal/config"
	advisormodel "github.com/rahhal-app/rahhal/backend/internal/model/advisor"
	"github.com/rahhal-app/rahhal/backend/internal/model/trip"
	"github.com/rahhal-app/rahhal/backend/internal/secret"
	"github.com/rahhal-app/rahhal/backend/internal/service/advisor"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] failed to load .env, using system environment: %v", err)
	}

	mode := flag.String("mode", "chat", "test mode: chat or form")
	prompt := flag.String("prompt", "", "user prompt for chat mode")
	contextSummary := flag.String("context", "", "optional prior conversation summary for chat mode")
	destination := flag.String("destination", "Riyadh", "destination for form mode")
	budget := flag.Int("budget", 3000, "budget for form mode")
	currency := flag.String("currency", "SAR", "budget currency for form mode")
	tripType := flag.String("type", "Cultural", "trip type for form mode")
	family := flag.String("family", "", "family composition for form mode")
	days := flag.Int("days", 3, "trip duration in days for form mode")
	timeout := flag.Duration("timeout", 45*time.Second, "request timeout")

	flag.Parse()

	if *mode != "chat" && *mode != "form" {
		flag.Usage()
		log.Fatal("specify -mode=chat or -mode=form")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	apiKey, err := secret.Resolve()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	chatModel, err := cfg.LLM.NewChatModel(ctx, apiKey)
	if err != nil {
		log.Fatalf("failed to initialize chat model: %v", err)
	}

	profile, err := advisormodel.Load(cfg.Advisor.ProfileFile)
	if err != nil {
		log.Fatalf("failed to load advisor profile: %v", err)
	}

	svc := advisor.NewService(chatModel, profile, cfg.LLM.Model)

	switch *mode {
	case "chat":
		runChat(ctx, svc, *prompt, *contextSummary)
	case "form":
		runForm(ctx, svc, profile, trip.Preferences{
			Destination:       *destination,
			Budget:            *budget,
			Currency:          *currency,
			TripType:          *tripType,
			FamilyComposition: *family,
			DurationDays:      *days,
		})
	}
}

func runChat(ctx context.Context, svc *advisor.Service, prompt, contextSummary string) {
	if prompt == "" {
		log.Fatal("chat mode requires -prompt")
	}

	log.Printf("sending chat prompt, context=%dB", len(contextSummary))

	reply, ok := svc.GenerateResponse(ctx, prompt, contextSummary)
	if !ok {
		log.Fatalf("advisor call failed: %s", reply)
	}

	fmt.Println(reply)
}

func runForm(ctx context.Context, svc *advisor.Service, profile advisormodel.Profile, prefs trip.Preferences) {
	if err := prefs.Validate(); err != nil {
		log.Fatalf("invalid preferences: %v", err)
	}

	prompt := advisor.PreferencesPrompt(profile, prefs)
	log.Printf("sending recommendation request: destination=%s budget=%d %s", prefs.Destination, prefs.Budget, prefs.Currency)

	reply, ok := svc.GenerateResponse(ctx, prompt, "")
	if !ok {
		log.Fatalf("advisor call failed: %s", reply)
	}

	fmt.Println(reply)
}
