package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/retroblast-engine/ase"
	"github.com/retroblast-engine/ase/aseimg"
)

func main() {
	var filePath, pngPath string
	var showLayers, showTags, showSlices bool
	var frame int

	flag.StringVar(&filePath, "file", "", "Path to the Aseprite file (.ase/.aseprite)")
	flag.BoolVar(&showLayers, "layers", false, "Print the layer hierarchy")
	flag.BoolVar(&showTags, "tags", false, "Print the animation tags")
	flag.BoolVar(&showSlices, "slices", false, "Print the slices and their keys")
	flag.StringVar(&pngPath, "png", "", "Write the flattened frame selected by -frame to this PNG file")
	flag.IntVar(&frame, "frame", 0, "Frame index used by -png")
	flag.Parse()

	if filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file flag is required")
		flag.Usage()
		os.Exit(1)
	}

	sprite, err := ase.DecodeFile(filePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	sprite.Describe(os.Stdout)
	if showLayers {
		fmt.Println()
		sprite.DescribeLayers(os.Stdout)
	}
	if showTags {
		fmt.Println()
		sprite.DescribeTags(os.Stdout)
	}
	if showSlices {
		fmt.Println()
		sprite.DescribeSlices(os.Stdout)
	}

	if pngPath != "" {
		if err := writePNG(sprite, frame, pngPath); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote frame %d to %s\n", frame, pngPath)
	}
}

func writePNG(sprite *ase.Sprite, frame int, path string) error {
	img, err := aseimg.Frame(sprite, frame)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
