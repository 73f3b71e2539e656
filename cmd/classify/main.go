package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/modgate/modgate/internal/classifier"
	"github.com/modgate/modgate/internal/classifier/remote"
)

// One-shot CLI around the classifier client: submit a document, look one up
// by signature, or push a moderation override. Useful for poking at the
// remote API without running the full service.
func main() {
	var (
		find    = flag.String("find", "", "look up a document by signature instead of submitting")
		allow   = flag.Bool("allow", false, "with -find: override the verdict to this value")
		doAllow = flag.Bool("override", false, "with -find: push -allow as a moderation override")
	)
	flag.Parse()

	baseURL := os.Getenv("CLASSIFIER_URL")
	if baseURL == "" {
		log.Fatal("CLASSIFIER_URL is required")
	}
	caller := remote.New(baseURL, os.Getenv("CLASSIFIER_API_KEY"), 15*time.Second, 0, 0)
	ctx := context.Background()

	if *find != "" {
		d := classifier.Find(ctx, caller, *find)
		if d == nil {
			log.Fatalf("document %s not found", *find)
		}
		fmt.Printf("signature=%s allow=%v\n", d.Signature(), d.Allow)
		if *doAllow {
			d.Allow = *allow
			if !d.Save(ctx) {
				log.Fatal("override failed")
			}
			fmt.Printf("override accepted: allow=%v\n", d.Allow)
		}
		return
	}

	// remaining args are key=value submission fields
	d := classifier.New(caller)
	for _, kv := range flag.Args() {
		k, v, found := strings.Cut(kv, "=")
		if !found {
			log.Fatalf("invalid field %q, want key=value", kv)
		}
		d.Data[k] = v
	}
	if len(d.Data) == 0 {
		log.Fatal("no fields given; usage: classify content=hello author_email=x@y.com")
	}

	if !d.Save(ctx) {
		log.Fatal("submission failed")
	}
	fmt.Printf("signature=%s allow=%v\n", d.Signature(), d.Allow)
}
