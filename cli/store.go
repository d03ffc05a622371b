package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"pedro.to/valgo/cli/output"
	"pedro.to/valgo/valorant"
)

func newStoreCmd() *cobra.Command {
	storeCmd := &cobra.Command{
		Use:   "store",
		Short: "Daily store, wallet and offer catalog",
	}
	storeCmd.AddCommand(newStoreDailyCmd())
	storeCmd.AddCommand(newStoreWalletCmd())
	storeCmd.AddCommand(newStorePricesCmd())
	storeCmd.AddCommand(newStoreItemsCmd())
	return storeCmd
}

func newStoreDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show the daily rotating shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			sf, err := c.Storefront(&valorant.StorefrontParams{Context: cmd.Context()})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, sf); handled {
				return err
			}

			s := getIO()
			reset := time.Duration(sf.SkinsPanelLayout.SingleItemOffersRemainingDurationInSeconds) * time.Second
			s.Printf("%s\n", s.Muted(fmt.Sprintf("resets in %s", reset)))
			headers := []string{"OFFER"}
			rows := make([][]string, 0, len(sf.SkinsPanelLayout.SingleItemOffers))
			for _, id := range sf.SkinsPanelLayout.SingleItemOffers {
				rows = append(rows, []string{id})
			}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			return nil
		},
	}
}

// currencyNames maps the well-known currency ids to readable labels.
var currencyNames = map[string]string{
	"85ad13f7-3d1b-5128-9eb2-7cd8ee0b5741": "VP",
	"e59aa87c-4cbf-517a-5983-6e81511be9b7": "Radianite",
	"85ca954a-41f2-ce94-9b45-8ca3dd39a00d": "Kingdom Credits",
	"f08d4ae3-939c-4576-ab26-09ce1f23bb37": "Free Agents",
}

func newStoreWalletCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wallet",
		Short: "Show the currency balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			w, err := c.Wallet(&valorant.WalletParams{Context: cmd.Context()})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, w); handled {
				return err
			}

			s := getIO()
			headers := []string{"CURRENCY", "AMOUNT"}
			rows := make([][]string, 0, len(w.Balances))
			for id, amount := range w.Balances {
				name := currencyNames[id]
				if name == "" {
					name = id
				}
				rows = append(rows, []string{name, strconv.Itoa(amount)})
			}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			return nil
		},
	}
}

func newStorePricesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prices",
		Short: "Show the full offer catalog with costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			p, err := c.Prices(&valorant.PricesParams{Context: cmd.Context()})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, p); handled {
				return err
			}

			s := getIO()
			headers := []string{"OFFER", "COST"}
			rows := make([][]string, 0, len(p.Offers))
			for _, offer := range p.Offers {
				cost := ""
				for id, amount := range offer.Cost {
					name := currencyNames[id]
					if name == "" {
						name = id
					}
					cost = fmt.Sprintf("%d %s", amount, name)
				}
				rows = append(rows, []string{offer.OfferID, cost})
			}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			return nil
		},
	}
}

// itemTypes maps cli names to the owned-item type ids.
var itemTypes = map[string]string{
	"agents":    valorant.ItemTypeAgents,
	"skins":     valorant.ItemTypeSkins,
	"variants":  valorant.ItemTypeSkinVariants,
	"buddies":   valorant.ItemTypeGunBuddies,
	"sprays":    valorant.ItemTypeSprays,
	"cards":     valorant.ItemTypePlayerCards,
	"titles":    valorant.ItemTypePlayerTitles,
	"contracts": valorant.ItemTypeContracts,
}

func newStoreItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items <type>",
		Short: "List owned items of a type (agents, skins, variants, buddies, sprays, cards, titles, contracts)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeID, ok := itemTypes[args[0]]
			if !ok {
				return fmt.Errorf("unknown item type %q", args[0])
			}

			c, persist, err := authedClient(cmd.Context())
			if err != nil {
				return err
			}
			defer persist()

			items, err := c.OwnedItems(&valorant.OwnedItemsParams{
				ItemType: typeID,
				Context:  cmd.Context(),
			})
			if err != nil {
				return err
			}
			if handled, err := handleJSONOutput(cmd, items); handled {
				return err
			}

			s := getIO()
			headers := []string{"ITEM"}
			rows := make([][]string, 0, len(items.Entitlements))
			for _, it := range items.Entitlements {
				rows = append(rows, []string{it.ItemID})
			}
			output.PrintTable(s.Out, headers, rows, s.IsTerminal())
			return nil
		},
	}
}
