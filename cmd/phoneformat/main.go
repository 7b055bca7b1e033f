package main

import (
	"fmt"

	"phonefmt/pkg/logger"
	"phonefmt/pkg/phoneformat"
)

const homeRegion = "CA"

var examples = []string{
	"604.788.0877",
	"(604) 788-0877",
	"1-604-788-0877",
	"6047880877 ext. 12",
	"604 788 0877 x305",
	"+44 20 7183 8750",
	"442071838750",
	"011 44 20 7183 8750",
	"011442071838750",
	"7880877",
	"email",
	"call me",
}

func main() {
	log := logger.New(logger.Config{
		Level:   logger.WARN,
		Format:  logger.TEXT,
		Service: "phoneformat",
	})

	n, err := phoneformat.New(phoneformat.DefaultPlan(), homeRegion)
	if err != nil {
		log.Fatal("Failed to build normalizer", "home_region", homeRegion, "error", err)
	}

	for _, raw := range examples {
		fmt.Printf("%-24q => %s\n", raw, phoneformat.Display(n, raw))
	}
}
