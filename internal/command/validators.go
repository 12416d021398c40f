// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"
	"strings"

	"github.com/snapgpa/snapgpa/internal/balances"
	"github.com/snapgpa/snapgpa/internal/output"
	"github.com/snapgpa/snapgpa/internal/snapshot"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, output.Formats)
}

func FormatValidator(value any) error {
	s, _ := value.(string)
	if _, err := snapshot.ParseFormat(s); err != nil {
		return fmt.Errorf("must be one of %v", snapshot.FormatNames)
	}
	return nil
}

func DisplayValidator(value any) error {
	return oneOf(value, []string{balances.DisplaySymbol, balances.DisplayName})
}

func DelimiterValidator(value any) error {
	s, _ := value.(string)
	_, err := balances.ParseDelimiter(s)
	return err
}

// SortValidator accepts a comma-separated list of stats columns, each with
// an optional - prefix.
func SortValidator(value any) error {
	s, _ := value.(string)
	for _, field := range strings.Split(s, ",") {
		if !slices.Contains(output.StatsHeaders, strings.TrimPrefix(field, "-")) {
			return fmt.Errorf("sort fields must be among %v", output.StatsHeaders)
		}
	}
	return nil
}

func oneOf(value any, valid []string) error {
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
