package main

import (
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"log"
	"os"

	txd "github.com/gtatools/txd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = "txd"
	app.Usage = "inspect and transcode RenderWare texture dictionaries"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	logger := log.New(ioutil.Discard, "", 0)

	app.Before = func(c *cli.Context) error {
		if c.Bool("verbose") {
			logger.SetOutput(os.Stderr)
		}
		return nil
	}

	app.Commands = []*cli.Command{
		{
			Name:      "list",
			Usage:     "list every texture in a dictionary",
			ArgsUsage: "FILE.txd",
			Action:    actionList,
		},
		{
			Name:      "info",
			Usage:     "print full detail for one texture",
			ArgsUsage: "FILE.txd NAME",
			Action:    actionInfo,
		},
		{
			Name:      "extract",
			Usage:     "decode a texture's level-0 mipmap to a PNG",
			ArgsUsage: "FILE.txd NAME OUT.png",
			Action:    actionExtract,
		},
		{
			Name:      "recompress",
			Usage:     "reload a dictionary's DXT-compressed D3D8/D3D9 textures and recompress their level-0 payloads",
			ArgsUsage: "IN.txd OUT.txd",
			Flags: []cli.Flag{
				&cli.Float64Flag{
					Name:  "quality",
					Value: 1.0,
					Usage: "0 (range-fit, fast) to 1 (cluster-fit, best)",
				},
			},
			Action: actionRecompress,
		},
		{
			Name:      "dedupe",
			Usage:     "list groups of textures whose level-0 pixels decode identically",
			ArgsUsage: "FILE.txd",
			Action:    actionDedupe,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadArg(c *cli.Context, index int) (*txd.TextureDictionary, error) {
	if c.NArg() <= index {
		return nil, cli.Exit("missing FILE.txd argument", 1)
	}
	d, err := txd.Load(c.Args().Get(index))
	if err != nil {
		return nil, cli.Exit(err, 1)
	}
	return d, nil
}

func actionList(c *cli.Context) error {
	d, err := loadArg(c, 0)
	if err != nil {
		return err
	}
	for _, t := range d.Textures() {
		fmt.Printf("%-32s %dx%d %-10s %-6s mipmaps=%d platform=%s\n",
			t.Name, mip0Width(t), mip0Height(t), t.RasterFormat, t.Compression, len(t.Mipmaps), t.Platform)
	}
	return nil
}

func mip0Width(t txd.Texture) uint32 {
	if len(t.Mipmaps) == 0 {
		return 0
	}
	return t.Mipmaps[0].Width
}

func mip0Height(t txd.Texture) uint32 {
	if len(t.Mipmaps) == 0 {
		return 0
	}
	return t.Mipmaps[0].Height
}

func actionInfo(c *cli.Context) error {
	d, err := loadArg(c, 0)
	if err != nil {
		return err
	}
	if c.NArg() < 2 {
		return cli.Exit("missing NAME argument", 1)
	}
	t, ok := d.Find(c.Args().Get(1))
	if !ok {
		return cli.Exit(fmt.Sprintf("no texture named %q", c.Args().Get(1)), 1)
	}
	fmt.Printf("name:          %s\n", t.Name)
	fmt.Printf("mask name:     %s\n", t.MaskName)
	fmt.Printf("platform:      %s\n", t.Platform)
	fmt.Printf("raster format: %s\n", t.RasterFormat)
	fmt.Printf("depth:         %d\n", t.Depth)
	fmt.Printf("has alpha:     %t\n", t.HasAlpha)
	fmt.Printf("compression:   %s\n", t.Compression)
	fmt.Printf("mipmaps:       %d\n", len(t.Mipmaps))
	for i, m := range t.Mipmaps {
		fmt.Printf("  level %2d: %dx%d, %d bytes\n", i, m.Width, m.Height, len(m.Bytes))
	}
	return nil
}

func actionExtract(c *cli.Context) error {
	d, err := loadArg(c, 0)
	if err != nil {
		return err
	}
	if c.NArg() < 3 {
		return cli.Exit("usage: extract FILE.txd NAME OUT.png", 1)
	}
	t, ok := d.Find(c.Args().Get(1))
	if !ok {
		return cli.Exit(fmt.Sprintf("no texture named %q", c.Args().Get(1)), 1)
	}

	p, err := txd.ToPresented(t)
	if err != nil {
		return cli.Exit(err, 1)
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(p.Width), int(p.Height)))
	copy(img.Pix, p.RGBA)

	out, err := os.Create(c.Args().Get(2))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return cli.Exit(err, 1)
	}
	return out.Close()
}

func actionRecompress(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("usage: recompress IN.txd OUT.txd", 1)
	}
	d, err := txd.Load(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err, 1)
	}

	quality := c.Float64("quality")
	for i := range d.Textures() {
		t := d.At(i)
		if t.Platform != txd.PlatformD3D9 && t.Platform != txd.PlatformD3D8 {
			continue
		}
		if t.Compression == txd.CompressionNone {
			continue
		}
		p, err := txd.ToPresented(t)
		if err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", t.Name, err), 1)
		}
		rebuilt, err := txd.FromPresented(p, quality)
		if err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", t.Name, err), 1)
		}
		rebuilt.Platform = t.Platform
		rebuilt.LibraryVersion = t.LibraryVersion
		*t = *rebuilt
	}

	if err := txd.Save(c.Args().Get(1), d); err != nil {
		return cli.Exit(err, 1)
	}
	return nil
}

func actionDedupe(c *cli.Context) error {
	d, err := loadArg(c, 0)
	if err != nil {
		return err
	}
	groups := d.DuplicateGroups()
	if len(groups) == 0 {
		fmt.Println("no duplicates found")
		return nil
	}
	for i, g := range groups {
		fmt.Printf("group %d:\n", i+1)
		for _, name := range g {
			fmt.Printf("  %s\n", name)
		}
	}
	return nil
}
