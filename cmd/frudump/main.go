// Command frudump decodes a raw IPMI FRU blob file and prints its areas
// and typed fields in a human-readable tree.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/liumorgan/openipmi"
)

func main() {
	raw := flag.Bool("raw", false, "dump binary field contents (e.g. multi-record payloads) as hex instead of their length")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: frudump [flags] <file.bin>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	blob, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatalf("failed to read file: %v", err)
	}

	f, err := fru.Decode(blob, fru.FetchAll)
	if err != nil {
		log.Fatalf("failed to decode FRU: %v", err)
	}

	fmt.Printf("%s: %d bytes, fingerprint %016x\n", args[0], f.EncodedLen(), fru.Fingerprint(blob))
	dumpNode(f.RootNode(), 0, *raw)
}

func dumpNode(node fru.FruNode, depth int, raw bool) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	for i := 0; i < node.NumFields(); i++ {
		name, kind, value, sub, err := node.GetField(i)
		if err != nil {
			fmt.Printf("%s%s: <%v>\n", indent, name, err)
			continue
		}
		switch kind {
		case fru.FieldSubNode:
			fmt.Printf("%s%s:\n", indent, name)
			dumpNode(sub, depth+1, raw)
		case fru.FieldAsciiString:
			fmt.Printf("%s%s: %q\n", indent, name, value.Bytes)
		case fru.FieldBinary:
			if raw {
				fmt.Printf("%s%s: % x\n", indent, name, value.Bytes)
			} else {
				fmt.Printf("%s%s: %d bytes\n", indent, name, len(value.Bytes))
			}
		case fru.FieldFloat:
			fmt.Printf("%s%s: %g\n", indent, name, value.Float)
		case fru.FieldTime:
			fmt.Printf("%s%s: %d (FRU minutes)\n", indent, name, value.Int)
		default:
			fmt.Printf("%s%s: %d\n", indent, name, value.Int)
		}
	}
}
