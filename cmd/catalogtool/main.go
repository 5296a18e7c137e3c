// catalogtool 方块目录编辑工具
//
// 用法:
//
//	catalogtool validate [-root .] [path]      校验目录并报告权重表警告
//	catalogtool equalize [-table shape|content] [-o out] [path]
//	                                          将权重表改为均分并输出
//	catalogtool list [-root .]                 列出 data/ 下的目录文件
//	catalogtool save [-root .] [path]          保存为覆盖配置（gdata）
//	catalogtool show                           显示当前覆盖配置
//	catalogtool reset                          删除覆盖配置
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/blockgrid/pkg/config"
	"github.com/decker502/blockgrid/pkg/embedded"
	"github.com/decker502/blockgrid/pkg/game"
)

const appName = "blockgrid"

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "equalize":
		err = runEqualize(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "save":
		err = runSave(os.Args[2:])
	case "show":
		err = runShow()
	case "reset":
		err = game.OpenCatalogStore(appName).Delete()
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: catalogtool <validate|equalize|list|save|show|reset> [flags] [path]")
}

// loadFromArgs 解析 -root 参数并从嵌入路径加载目录
func loadFromArgs(fs *flag.FlagSet, args []string) (*config.BlockCatalog, string, error) {
	root := fs.String("root", ".", "项目根目录（包含 data/）")
	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}

	path := config.DefaultCatalogPath
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	embedded.Init(os.DirFS(*root))
	catalog, err := config.LoadBlockCatalog(path)
	return catalog, path, err
}

func runValidate(args []string) error {
	catalog, path, err := loadFromArgs(flag.NewFlagSet("validate", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	if warnings := writeValidateReport(os.Stdout, path, catalog); warnings > 0 {
		return fmt.Errorf("%d weight table warning(s)", warnings)
	}
	return nil
}

// writeValidateReport 输出目录摘要，返回权重表警告数
// 权重表固定按 shapeWeights、contentWeights 的顺序报告
func writeValidateReport(w io.Writer, path string, catalog *config.BlockCatalog) int {
	fmt.Fprintf(w, "✅ %s: grid %dx%d, %d shapes\n", path, catalog.Grid.Width, catalog.Grid.Height, len(catalog.ShapeNames()))

	warnings := 0
	tables := []struct {
		name  string
		table config.WeightedTable[string]
	}{
		{"shapeWeights", catalog.ShapeWeights},
		{"contentWeights", catalog.ContentWeights},
	}
	for _, tt := range tables {
		if err := tt.table.Validate(); err != nil {
			fmt.Fprintf(w, "⚠️  %s: %v\n", tt.name, err)
			warnings++
		} else {
			fmt.Fprintf(w, "   %s: %d entries, total %.2f\n", tt.name, len(tt.table), tt.table.Total())
		}
	}
	for _, name := range catalog.ShapeNames() {
		shape, _ := catalog.Shape(name)
		fmt.Fprintf(w, "   %-14s %d cells %v\n", name, shape.CellCount(), shape.Coordinates())
	}
	return warnings
}

func runEqualize(args []string) error {
	fs := flag.NewFlagSet("equalize", flag.ExitOnError)
	table := fs.String("table", "content", "要均分的权重表：shape 或 content")
	out := fs.String("o", "", "输出文件（为空时输出到标准输出）")

	catalog, _, err := loadFromArgs(fs, args)
	if err != nil {
		return err
	}

	switch *table {
	case "shape":
		catalog.ShapeWeights.EqualizeWeights()
	case "content":
		catalog.ContentWeights.EqualizeWeights()
	default:
		return fmt.Errorf("unknown table %q (want shape or content)", *table)
	}

	data, err := catalog.Marshal()
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *out, err)
	}
	fmt.Printf("✅ wrote %s\n", *out)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	root := fs.String("root", ".", "项目根目录（包含 data/）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	embedded.Init(os.DirFS(*root))
	files, err := embedded.Glob("data/*.yaml")
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func runSave(args []string) error {
	catalog, path, err := loadFromArgs(flag.NewFlagSet("save", flag.ExitOnError), args)
	if err != nil {
		return err
	}

	store := game.OpenCatalogStore(appName)
	if !store.Persistent() {
		return errors.New("persistent storage unavailable")
	}
	if err := store.Save(catalog); err != nil {
		return err
	}
	fmt.Printf("✅ saved %s as catalog override\n", path)
	return nil
}

func runShow() error {
	catalog, err := game.OpenCatalogStore(appName).Load()
	if err != nil {
		return err
	}
	if catalog == nil {
		fmt.Println("no catalog override saved")
		return nil
	}
	data, err := catalog.Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
