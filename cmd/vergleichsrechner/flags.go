package main

import "github.com/spf13/pflag"

// bind ties a settings key to a flag. Flags only win over the settings file
// and environment when set explicitly.
func (a *app) bind(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
