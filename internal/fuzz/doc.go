
// Package fuzztests houses Go fuzz harnesses for the annotation parser and
// the fragment locator. Their goal is to smoke test robustness: no panics on
// arbitrary input and the set/match invariants hold for whatever is parsed.
//
// Назначение: прогонять произвольные байты через FileSet, annot.ParseFile и
// locate.Locate.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/annot, internal/locate,
// internal/testkit.

package fuzztests
