package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/talentdesk/internal/ctl"
)

func main() {
	if err := ctl.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
