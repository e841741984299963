package button

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <sample>",
	Short: "Print the button a raw analog sample maps to",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sample, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		classifier := loadClassifier()
		fmt.Println(classifier.Classify(sample))
		return nil
	},
}

func init() {
	Command.AddCommand(classifyCmd)
}
