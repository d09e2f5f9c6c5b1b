// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// По этим ошибкам вызывающий код решает: молча проигнорировать
// сообщение или залогировать сбой.
package common

import "errors"

// Ошибки баланса
var (
	// ErrAccountNotFound — для группы ещё нет записи баланса
	ErrAccountNotFound = errors.New("баланс группы не найден")
	// ErrAmountTooSmall — сумма меньше минимальной (0.01)
	ErrAmountTooSmall = errors.New("сумма слишком мала")
	// ErrAmountTooLarge — сумма больше максимальной (999 999 999.99)
	ErrAmountTooLarge = errors.New("сумма слишком большая")
)

// Ошибки анкет
var (
	// ErrFileTypeNotAllowed — расширение загружаемого файла не разрешено
	ErrFileTypeNotAllowed = errors.New("недопустимый тип файла")
)
