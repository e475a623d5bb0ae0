package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jclass/classfile"
	"github.com/dhamidi/jclass/java"
)

func loadClass(filename string) (*java.Class, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read class file: %w", err)
	}
	if !classfile.Sniff(data) {
		return nil, fmt.Errorf("%s: not a class file (bad magic)", filename)
	}
	class, err := java.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse class file: %w", err)
	}
	return class, nil
}
