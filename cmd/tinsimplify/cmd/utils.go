package cmd

import (
	"bufio"
	"fmt"
	"io/ioutil"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// fileExists returns nil if path exists, or an error if it doesn't or if
// it can't be stat'ed.
func fileExists(path string) (err error) {
	if _, err = os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("no such file '%v'", path)
		}
	}
	return err
}

// confirmIfExists checks that path exists, and if so asks the user to
// confirm overwriting it. Returns true if path doesn't exist, or if the
// user confirmed; false (or a non-nil err) means the caller should abort.
func confirmIfExists(path, msg string) (ok bool, err error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return askForConfirmation(msg), nil
}

// askForConfirmation shows msg and asks the user to type y or n (ENTER
// defaults to no).
func askForConfirmation(msg string) bool {
	fmt.Println(msg)
	reader := bufio.NewReader(os.Stdin)
	defaultInput := byte('N')

	for {
		input, err := reader.ReadString('\n')
		c := defaultInput
		if len(input) > 0 && input[0] != '\n' {
			c = input[0]
		}
		if err != nil {
			return c == 'Y' || c == 'y'
		}
		switch c {
		case 'Y', 'y':
			return true
		case 'N', 'n':
			return false
		}
	}
}

func unmarshalYAMLFile(path string, out interface{}) error {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(buf, out)
}

func marshalYAMLFile(path string, in interface{}) error {
	buf, err := yaml.Marshal(in)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, buf, 0644)
}
