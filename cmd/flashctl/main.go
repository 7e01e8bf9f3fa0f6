// Command flashctl inspects and edits paged flash images through the
// pagedev adapter.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/flashkit/pagedev"
	"github.com/flashkit/pagedev/fingerprint"
	"github.com/flashkit/pagedev/internal/pattern"
)

var cli struct {
	Image    string `help:"Path to the flash image file." required:"" type:"path"`
	PageSize int    `help:"Page size of the device in bytes." default:"256"`
	Verbose  bool   `short:"v" help:"Enable debug logging."`

	Format formatCmd `cmd:"" help:"Create an erased image with the given page count."`
	Info   infoCmd   `cmd:"" help:"Print device geometry."`
	Read   readCmd   `cmd:"" help:"Hex-dump a byte range."`
	Write  writeCmd  `cmd:"" help:"Program a file's contents at an offset."`
	Erase  eraseCmd  `cmd:"" help:"Erase a byte range."`
	Wipe   wipeCmd   `cmd:"" help:"Erase the whole device, or fill it with a test pattern."`
	Sum    sumCmd    `cmd:"" help:"Fingerprint a byte range."`
}

type app struct {
	image    string
	pageSize int
	log      *logrus.Logger
}

func (a *app) open() (*pagedev.T, *pagedev.File, error) {
	drv, err := pagedev.OpenFile(a.image, a.pageSize)
	if err != nil {
		return nil, nil, err
	}

	var opts []pagedev.Option
	if a.log != nil {
		opts = append(opts, pagedev.WithLogger(a.log))
	}
	dev := pagedev.New(drv, opts...)
	if err := dev.Init(); err != nil {
		drv.Close()
		return nil, nil, err
	}
	return dev, drv, nil
}

type formatCmd struct {
	Pages int `arg:"" help:"Number of pages in the new image."`
}

func (c *formatCmd) Run(a *app) error {
	drv, err := pagedev.CreateFile(a.image, a.pageSize, c.Pages)
	if err != nil {
		return err
	}
	defer drv.Close()

	fmt.Printf("%s %s (%d pages of %d bytes)\n",
		color.GreenString("formatted"), a.image, c.Pages, a.pageSize)
	return nil
}

type infoCmd struct{}

func (c *infoCmd) Run(a *app) error {
	dev, drv, err := a.open()
	if err != nil {
		return err
	}
	defer drv.Close()

	label := color.New(color.FgCyan).SprintFunc()
	fmt.Printf("%s %s\n", label("image:"), a.image)
	fmt.Printf("%s %d bytes\n", label("size:"), dev.Size())
	fmt.Printf("%s %d bytes\n", label("read size:"), dev.ReadSize())
	fmt.Printf("%s %d bytes\n", label("program size:"), dev.ProgramSize())
	fmt.Printf("%s %d bytes\n", label("erase size:"), dev.EraseSize())
	fmt.Printf("%s %d\n", label("pages:"), drv.PageCount())
	return nil
}

type readCmd struct {
	Addr   int64 `arg:"" help:"Start address."`
	Length int64 `arg:"" help:"Number of bytes."`
}

func (c *readCmd) Run(a *app) error {
	dev, drv, err := a.open()
	if err != nil {
		return err
	}
	defer drv.Close()

	buf := make([]byte, c.Length)
	if err := dev.Read(buf, c.Addr); err != nil {
		return err
	}

	dump := hex.Dumper(os.Stdout)
	defer dump.Close()
	_, err = dump.Write(buf)
	return err
}

type writeCmd struct {
	Addr  int64  `arg:"" help:"Start address."`
	Input string `arg:"" help:"File with the data to program." type:"existingfile"`
}

func (c *writeCmd) Run(a *app) error {
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return err
	}

	dev, drv, err := a.open()
	if err != nil {
		return err
	}
	defer drv.Close()

	if err := dev.Program(data, c.Addr); err != nil {
		return err
	}
	fmt.Printf("%s %d bytes at %d (%d page writes)\n",
		color.GreenString("programmed"), len(data), c.Addr,
		dev.Stats().PageWrites.Count())
	return nil
}

type eraseCmd struct {
	Addr   int64 `arg:"" help:"Start address."`
	Length int64 `arg:"" help:"Number of bytes."`
}

func (c *eraseCmd) Run(a *app) error {
	dev, drv, err := a.open()
	if err != nil {
		return err
	}
	defer drv.Close()

	if err := dev.Erase(c.Addr, c.Length); err != nil {
		return err
	}
	fmt.Printf("%s %d pages\n",
		color.GreenString("erased"), dev.Stats().PageWrites.Count())
	return nil
}

type wipeCmd struct {
	Random bool   `help:"Fill with a deterministic test pattern instead of erasing."`
	Seed   uint64 `help:"Seed for the test pattern." default:"1"`
}

func (c *wipeCmd) Run(a *app) error {
	dev, drv, err := a.open()
	if err != nil {
		return err
	}
	defer drv.Close()

	if !c.Random {
		// The erase end page is inclusive, so back off one byte to stay
		// on the device.
		return dev.Erase(0, dev.Size()-1)
	}

	gen := pattern.New(c.Seed, 0)
	buf := make([]byte, dev.ProgramSize())
	for addr := int64(0); addr < dev.Size(); addr += int64(len(buf)) {
		gen.Fill(buf)
		if err := dev.Program(buf, addr); err != nil {
			return err
		}
	}
	fmt.Printf("%s with pattern seed %d\n", color.GreenString("filled"), c.Seed)
	return nil
}

type sumCmd struct {
	Algo   string `help:"Fingerprint algorithm." enum:"crc16,xxh64,highway" default:"crc16"`
	Addr   int64  `help:"Start address." default:"0"`
	Length int64  `help:"Number of bytes, or -1 for the rest of the device." default:"-1"`
	Key    string `help:"Hex key for the highway algorithm."`
}

func (c *sumCmd) Run(a *app) error {
	dev, drv, err := a.open()
	if err != nil {
		return err
	}
	defer drv.Close()

	length := c.Length
	if length < 0 {
		length = dev.Size() - c.Addr
	}
	buf := make([]byte, length)
	if err := dev.Read(buf, c.Addr); err != nil {
		return err
	}

	switch c.Algo {
	case "crc16":
		fmt.Printf("%04x\n", fingerprint.CRC16(buf))
	case "xxh64":
		fmt.Printf("%016x\n", fingerprint.XXH64(buf))
	case "highway":
		key, err := hex.DecodeString(c.Key)
		if err != nil {
			return err
		}
		sum, err := fingerprint.Highway(buf, key)
		if err != nil {
			return err
		}
		fmt.Printf("%016x\n", sum)
	}
	return nil
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("flashctl"),
		kong.Description("Inspect and edit paged flash images."))

	a := &app{image: cli.Image, pageSize: cli.PageSize}
	if cli.Verbose {
		a.log = logrus.New()
		a.log.SetLevel(logrus.DebugLevel)
	}

	if err := ctx.Run(a); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("flashctl: %s", err))
		os.Exit(1)
	}
}
