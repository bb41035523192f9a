package domain

import (
	"testing"
	"time"
)

func TestTriggerType_IsValid(t *testing.T) {
	valid := []TriggerType{
		TriggerLoginStreak, TriggerGameTurnover, TriggerGameTransaction,
		TriggerDeposit, TriggerUserVerification, TriggerWinningBetsCount,
		TriggerTotalWinAmount, TriggerMaxSingleWin, TriggerConsecutiveWins,
		TriggerSpecificGameEngagement, TriggerMarketSpecificBets,
		TriggerTotalDepositAmount, TriggerWithdrawal, TriggerReferralCount,
		TriggerAccountLongevity, TriggerProfileCompletion, TriggerNetResult,
	}
	for _, tt := range valid {
		if !tt.IsValid() {
			t.Errorf("TriggerType(%q).IsValid() = false, want true", tt)
		}
	}

	if TriggerType("jackpot_spin").IsValid() {
		t.Error("unknown trigger type should not be valid")
	}
	if TriggerType("").IsValid() {
		t.Error("empty trigger type should not be valid")
	}
}

func TestTriggerType_IsGameDependent(t *testing.T) {
	tests := []struct {
		trigger TriggerType
		want    bool
	}{
		{TriggerGameTurnover, true},
		{TriggerWinningBetsCount, true},
		{TriggerMaxSingleWin, true},
		{TriggerMarketSpecificBets, true},
		{TriggerNetResult, true},
		{TriggerLoginStreak, false},
		{TriggerDeposit, false},
		{TriggerWithdrawal, false},
		{TriggerReferralCount, false},
		{TriggerProfileCompletion, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.trigger), func(t *testing.T) {
			if got := tt.trigger.IsGameDependent(); got != tt.want {
				t.Errorf("TriggerType(%q).IsGameDependent() = %v, want %v", tt.trigger, got, tt.want)
			}
		})
	}
}

func TestReward_Grants(t *testing.T) {
	tests := []struct {
		name        string
		kind        RewardKind
		wantPoints  bool
		wantBonus   bool
	}{
		{"points grants wallet only", RewardPoints, true, false},
		{"bonus grants bonus only", RewardBonus, false, true},
		{"both grants both", RewardBoth, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reward{Kind: tt.kind}
			if got := r.GrantsPoints(); got != tt.wantPoints {
				t.Errorf("Reward.GrantsPoints() = %v, want %v", got, tt.wantPoints)
			}
			if got := r.GrantsBonus(); got != tt.wantBonus {
				t.Errorf("Reward.GrantsBonus() = %v, want %v", got, tt.wantBonus)
			}
		})
	}
}

func TestEvent_IsSportsShaped(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  bool
	}{
		{
			name:  "sportsbook vertical",
			event: Event{Vertical: VerticalSportsbook},
			want:  true,
		},
		{
			name:  "casino vertical with sports fields still casino",
			event: Event{Vertical: VerticalCasino, MarketType: "1X2"},
			want:  false,
		},
		{
			name:  "no vertical with market type",
			event: Event{MarketType: "1X2"},
			want:  true,
		},
		{
			name:  "no vertical, casino fields",
			event: Event{Provider: "netent", GameID: "starburst"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsSportsShaped(); got != tt.want {
				t.Errorf("Event.IsSportsShaped() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewBonusInstance(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	tpl := &BonusTemplate{ID: "tpl-1", Name: "Welcome Spin", Amount: 25, WageringMultiplier: 30}

	inst := NewBonusInstance("bonus-1", "player-1", tpl, "def-1", KindAchievement, now)

	if inst.Amount != 25 || inst.WageringMultiplier != 30 {
		t.Errorf("instance should copy template amount/wagering, got %v/%v", inst.Amount, inst.WageringMultiplier)
	}
	if inst.Status != BonusActive {
		t.Errorf("new instance status = %v, want %v", inst.Status, BonusActive)
	}
	if want := now.AddDate(0, 0, DefaultBonusExpiryDays); !inst.ExpiresAt.Equal(want) {
		t.Errorf("default expiry = %v, want %v", inst.ExpiresAt, want)
	}
	if inst.SourceDefinitionID != "def-1" || inst.SourceKind != KindAchievement {
		t.Error("instance should be tagged with its originating definition")
	}

	tpl.ExpiryDays = 14
	inst = NewBonusInstance("bonus-2", "player-1", tpl, "def-1", KindAchievement, now)
	if want := now.AddDate(0, 0, 14); !inst.ExpiresAt.Equal(want) {
		t.Errorf("template expiry = %v, want %v", inst.ExpiresAt, want)
	}
}
