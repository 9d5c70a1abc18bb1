package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"

	"github.com/cloudprep/mockexam-backend/internal/bank"
	"github.com/cloudprep/mockexam-backend/internal/config"
)

// bankcheck validates the bank files without starting the server. Useful
// after editing questions.json by hand: the server refuses to boot on a
// broken bank, and this gives the error without the boot.
func main() {
	var dir string
	flag.StringVar(&dir, "dir", "", "Bank directory (defaults to BANK_DIR)")
	flag.Parse()

	cfg := config.Load()
	if dir == "" {
		dir = cfg.BankDir
	}

	banks, err := bank.Load(dir, zerolog.Nop())
	if err != nil {
		log.Fatalf("Bank validation failed: %v", err)
	}

	multi := 0
	withImage := 0
	for i := range banks.Questions {
		if banks.Questions[i].MultiSelect() {
			multi++
		}
		if banks.Questions[i].Image != "" {
			withImage++
		}
	}

	fmt.Printf("Bank OK: %d questions (%d multi-select, %d with images), %d notes, %d simulations\n",
		len(banks.Questions), multi, withImage, len(banks.Notes), len(banks.Simulations))

	if cfg.QuestionCount > len(banks.Questions) {
		fmt.Printf("WARNING: QUESTION_COUNT=%d exceeds bank size %d — the server will refuse to start\n",
			cfg.QuestionCount, len(banks.Questions))
		os.Exit(1)
	}
}
