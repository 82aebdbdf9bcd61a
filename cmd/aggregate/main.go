// Command aggregate runs Stage 1b: collection-level ensemble statistics.
package main

import (
	"log"
	"os"

	"github.com/impresso/lid-core/internal/aggregatecli"
)

func main() {
	if err := aggregatecli.App().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
