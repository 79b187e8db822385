// Package fuzztests houses Go fuzz harnesses that exercise the manifest
// pipeline (source -> lexer -> parser -> sorter -> format). Its goal is to
// smoke test robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/ast, internal/engine, internal/format.
package fuzztests
