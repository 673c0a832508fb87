package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Результаты поиска фиксов в выводе инструмента
	FixInfo       Code = 1000
	FixFound      Code = 1001
	FixNotFound   Code = 1002
	FixWrongCount Code = 1003

	// Разметка CHECK-FIXES в исходнике
	AnnInfo               Code = 2000
	AnnNestedPrimary      Code = 2001
	AnnOrphanContinuation Code = 2002

	// Ввод-вывод
	IOInfo       Code = 4000
	IOCacheError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	FixInfo:               "Fix information",
	FixFound:              "Fix found in tool output",
	FixNotFound:           "Fix not found in tool output",
	FixWrongCount:         "Fix found the wrong number of times",
	AnnInfo:               "Annotation information",
	AnnNestedPrimary:      "Fix block opened while another block is open",
	AnnOrphanContinuation: "Continuation line without an open fix block",
	IOInfo:                "I/O information",
	IOCacheError:          "Annotation cache unavailable",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FIX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("ANN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
