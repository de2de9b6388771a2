package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/palemoky/uno/internal/bot"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/transport"
)

func main() {
	addr := flag.String("addr", "localhost:1780", "服务器 TCP 地址")
	wsURL := flag.String("ws", "", "使用 WebSocket 连接，例如 ws://localhost:1781/ws")
	name := flag.String("name", "", "玩家名，为空时随机生成")
	turns := flag.Int("turns", 20, "最多走多少回合")
	first := flag.String("play", "", "第一回合强制打出的牌，例如 \"red 5\"、\"wild draw4\"")
	flag.Parse()

	var opening *card.Card
	if *first != "" {
		c, err := card.Parse(*first)
		if err != nil {
			log.Fatalf("无法解析 -play: %v", err)
		}
		opening = &c
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		conn *transport.Conn
		err  error
	)
	if *wsURL != "" {
		conn, err = transport.DialWebSocket(ctx, *wsURL)
	} else {
		conn, err = transport.Dial(ctx, *addr)
	}
	if err != nil {
		log.Fatalf("连接服务器失败: %v", err)
	}

	code := run(ctx, bot.New(conn, *name), opening, *turns)
	_ = conn.Close()
	stop()
	os.Exit(code)
}

func run(ctx context.Context, b *bot.Bot, opening *card.Card, turns int) int {
	seat, err := b.Join()
	if err != nil {
		log.Printf("入座失败: %v", err)
		return 1
	}
	self := b.Self()
	log.Printf("🪑 %s 入座 %d 号位，当前牌 %s", self.Name(), seat, b.Current())
	log.Printf("🂠 手牌: %s", card.FormatHand(self.Hand()))

	for i := range turns {
		if ctx.Err() != nil {
			return 0
		}

		var (
			turn *bot.Turn
			err  error
		)
		if i == 0 && opening != nil {
			turn, err = b.PlayCard(*opening)
		} else {
			turn, err = b.Play()
		}
		if err != nil {
			if protocol.IsFatal(err) {
				log.Printf("连接出错，退出: %v", err)
			} else {
				log.Printf("回合 %d 出错: %v", i+1, err)
			}
			return 1
		}

		switch {
		case turn.Rejected != "":
			log.Printf("回合 %d: %s 被拒绝: %s", i+1, turn.Action, turn.Rejected)
		case turn.Action == bot.ActionPlay:
			log.Printf("回合 %d: 打出 %s", i+1, turn.Card)
		default:
			log.Printf("回合 %d: 摸到 %s", i+1, turn.Card)
		}

		if b.Self().HandSize() == 0 {
			log.Printf("🎉 %s 出完了所有手牌", b.Self().Name())
			return 0
		}
	}

	log.Printf("🂠 剩余手牌: %s", card.FormatHand(b.Self().Hand()))
	return 0
}
