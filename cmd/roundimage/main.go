package main

import (
	"fmt"
	"os"

	"blogbootstrap/internal/config"
	"blogbootstrap/internal/imaging"
)

func main() {
	img := config.DefaultImage()

	if err := imaging.MakeRounded(img.Input, img.Output, &img.Radius); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Rounded image saved as %s\n", img.Output)
}
