package ase

import (
	"fmt"
	"io"
	"strings"
)

// formatFileSize converts the file size to a human-readable format
func formatFileSize(size uint32) string {
	if size < 1024 {
		return fmt.Sprintf("%d bytes", size)
	} else if size < 1024*1024 {
		return fmt.Sprintf("%.1fK", float64(size)/1024)
	} else if size < 1024*1024*1024 {
		return fmt.Sprintf("%.1fM", float64(size)/(1024*1024))
	}
	return fmt.Sprintf("%.1fG", float64(size)/(1024*1024*1024))
}

// Describe writes a summary of the sprite header to w.
func (s *Sprite) Describe(w io.Writer) {
	h := s.Header
	fmt.Fprintln(w, "Sprite Information:")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "Size: %d x %d pixels (%s)\n", s.Width, s.Height, formatFileSize(h.FileSize))
	fmt.Fprintf(w, "Type: colormode %s, colors %d, depth %d bpp\n", s.Format.Mode, h.GetNumColors(), s.Format.BytesPerPixel()*8)
	if s.Format.Mode == ColorModeIndexed {
		fmt.Fprintf(w, "Transparent Index: %d\n", s.Format.TransparentIndex)
	}
	fmt.Fprintf(w, "Aspect Ratio: %s\n", h.GetPixelRatio())
	gridWidth, gridHeight := h.GetGridSize()
	fmt.Fprintf(w, "Grid Size: %d x %d\n", gridWidth, gridHeight)
	fmt.Fprintf(w, "Number of Frames: %d\n", len(s.Frames))
	fmt.Fprintf(w, "Palette Entries: %d\n", len(s.Palette))
}

// DescribeLayers writes the layer hierarchy to w, indented by group level.
func (s *Sprite) DescribeLayers(w io.Writer) {
	fmt.Fprintln(w, "Layer name and hierarchy      Blend       Opacity")
	fmt.Fprintln(w, "-------------------------------------------------")
	for i, layer := range s.Layers {
		indent := strings.Repeat("  ", int(layer.Level))
		prefix := "- "
		if i > 0 && s.Layers[i-1].Level < layer.Level {
			prefix = "`- "
		} else if i > 0 && s.Layers[i-1].Level == layer.Level {
			prefix = "|- "
		}
		name := layer.Name
		if layer.Group {
			name += "/"
		}
		fmt.Fprintf(w, "%-30s%-12s%d\n", indent+prefix+name, layer.BlendMode, layer.Opacity)
	}
}

// DescribeTags writes one line per tag to w.
func (s *Sprite) DescribeTags(w io.Writer) {
	for _, tag := range s.Tags {
		repeat := "infinite"
		if tag.Repeat != nil {
			repeat = fmt.Sprintf("x%d", *tag.Repeat)
		}
		fmt.Fprintf(w, "%s: frames %d-%d, %s, %s\n", tag.Name, tag.From, tag.To, tag.LoopDir, repeat)
	}
}

// DescribeSlices writes one line per slice key to w.
func (s *Sprite) DescribeSlices(w io.Writer) {
	for _, sl := range s.Slices {
		if sl.Nine {
			for _, k := range sl.NineKeys {
				fmt.Fprintf(w, "%s @%d: %v center %v pivot %v\n", sl.Name, k.Frame, k.Bounds(), k.Center(), k.Pivot)
			}
			continue
		}
		for _, k := range sl.Keys {
			fmt.Fprintf(w, "%s @%d: %v pivot %v\n", sl.Name, k.Frame, k.Bounds(), k.Pivot)
		}
	}
}
