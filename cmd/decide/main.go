// Command decide runs Stage 2: the per-item decision engine.
package main

import (
	"log"
	"os"

	"github.com/impresso/lid-core/internal/decidecli"
)

func main() {
	if err := decidecli.App().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
