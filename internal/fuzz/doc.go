// Package fuzztests houses Go fuzz harnesses that exercise the front-end
// passes (lexer -> indent -> brackets -> parser -> types -> index). Its goal
// is to smoke test robustness: no panics, no hangs, and every reported range
// stays inside the module text.
//
// Назначение: прогонять произвольные байты через проходы без файловой системы.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
