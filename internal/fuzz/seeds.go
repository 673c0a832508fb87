package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"",
	"\n",
	"// CHECK-FIXES: foo(a, b);\n",
	"// CHECK-FIXES: foo(a, b);\n\n// CHECK-FIXES: foo(a, b);\n",
	"// CHECK-FIXES: a\n// CHECK-FIXES-NEXT: b\n// CHECK-FIXES-NEXT: c\nx\n",
	"// CHECK-FIXES: a\n// CHECK-FIXES: b\n",
	"// CHECK-FIXES-NEXT: orphan\n",
	"// CHECK-FIXES: CHECK-FIXES: twice\n",
	"\xef\xbb\xbf// CHECK-FIXES: bom\r\n",
	"CHECK-FIXES: \nCHECK-FIXES-NEXT: \n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}
