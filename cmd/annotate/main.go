// Command annotate runs Stage 1a: per-item multi-classifier language
// annotation.
package main

import (
	"log"
	"os"

	"github.com/impresso/lid-core/internal/annotatecli"
)

func main() {
	if err := annotatecli.App().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
